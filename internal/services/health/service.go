package health

// ModelInfo reports whether the fraud classifier artifact is loaded.
type ModelInfo interface {
	Loaded() bool
	ModelName() string
}

// Service encapsulates health-related checks.
type Service struct {
	Model ModelInfo
}

// NewService constructs a new health service.
func NewService(model ModelInfo) *Service {
	return &Service{Model: model}
}

// Status returns the health payload, including classifier readiness.
func (s *Service) Status() map[string]any {
	payload := map[string]any{
		"ok":           true,
		"model_loaded": false,
	}
	if s.Model != nil && s.Model.Loaded() {
		payload["model_loaded"] = true
		payload["model"] = s.Model.ModelName()
	}
	return payload
}
