package collector

import (
	"context"
	"fmt"

	"TempHarvest/internal/model"
)

// StaticFetcher serves pages from memory, for tests and offline runs.
type StaticFetcher struct {
	Pages  map[string][]byte
	Errors map[string]error

	// Requests records every URL asked for, in order.
	Requests []string
	// Headers holds the headers of the last request.
	Headers map[string]string
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) Fetch(_ context.Context, url string, headers map[string]string) ([]byte, error) {
	s.Requests = append(s.Requests, url)
	s.Headers = headers
	if err, ok := s.Errors[url]; ok {
		return nil, err
	}
	page, ok := s.Pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: status 404", model.ErrTransport)
	}
	return page, nil
}
