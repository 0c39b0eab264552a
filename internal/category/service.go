package category

import "log/slog"

// Service exposes the static category catalog. There is no repository behind
// it; the enumeration is compiled in.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) GetAllCategories() []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(ordered))
	for _, c := range ordered {
		responses = append(responses, CategoryResponse{
			Name:  string(c),
			Label: Label(c),
			Type:  TypeOf(c),
		})
	}
	return responses
}
