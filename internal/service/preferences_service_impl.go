package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/alexanderramin/tomato/internal/repository"
)

// ThemeKey is the record name of the theme flag.
const ThemeKey = "theme"

type preferencesService struct {
	kv       repository.KVRepo
	observer UseCaseObserver
	current  *domain.Theme
}

func NewPreferencesService(kv repository.KVRepo, observers ...UseCaseObserver) PreferencesService {
	return &preferencesService{
		kv:       kv,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Theme returns the stored theme. Missing, unreadable or unknown values
// read as light. Once set in this process the in-memory value wins.
func (s *preferencesService) Theme(ctx context.Context) domain.Theme {
	if s.current != nil {
		return *s.current
	}
	t := domain.ThemeLight
	rec, err := s.kv.Get(ctx, ThemeKey)
	if err == nil {
		t = domain.ParseTheme(strings.TrimSpace(rec.Value))
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{Name: "load-theme", Err: err})
	}
	s.current = &t
	return t
}

func (s *preferencesService) SetTheme(ctx context.Context, t domain.Theme) (_ domain.Theme, err error) {
	defer observe(ctx, s.observer, "set-theme", map[string]any{"theme": string(t)}, &err)()

	s.current = &t
	if err = s.kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return t, fmt.Errorf("saving theme: %w", err)
	}
	return t, nil
}

func (s *preferencesService) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return s.SetTheme(ctx, s.Theme(ctx).Toggle())
}
