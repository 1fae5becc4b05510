package scene

import (
	"context"
	"log/slog"

	"solar-system-server/internal/shared/errors"
)

type Service struct {
	generator *Generator
	inspector *Inspector
	repo      Repository
	animator  *Animator
	logger    *slog.Logger
}

func NewService(generator *Generator, inspector *Inspector, repo Repository, animator *Animator, logger *slog.Logger) *Service {
	logger.Debug("Initializing scene service", "backend", repo.Backend())

	return &Service{
		generator: generator,
		inspector: inspector,
		repo:      repo,
		animator:  animator,
		logger:    logger,
	}
}

// Generate replaces the session's scene with a newly generated one.
func (s *Service) Generate(ctx context.Context, sessionID string) (*Scene, error) {
	generated := s.generator.Generate()

	if err := s.repo.Save(ctx, sessionID, generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// Current returns the session's scene, generating the first one on demand.
func (s *Service) Current(ctx context.Context, sessionID string) (*Scene, error) {
	current, err := s.repo.Get(ctx, sessionID)
	if errors.IsNotFound(err) {
		s.logger.Debug("No scene for session yet, generating",
			"component", "scene_service",
			"operation", "current")
		return s.Generate(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Inspect hit-tests the pointer against the last completed scene. A session
// without a scene has nothing to hit.
func (s *Service) Inspect(ctx context.Context, sessionID string, p Pointer) (Tooltip, error) {
	current, err := s.repo.Get(ctx, sessionID)
	if errors.IsNotFound(err) {
		return s.inspector.Leave(), nil
	}
	if err != nil {
		return Tooltip{}, err
	}
	return s.inspector.Move(current, p), nil
}

func (s *Service) Leave() Tooltip {
	return s.inspector.Leave()
}

// Export encodes the session's current surface as PNG.
func (s *Service) Export(ctx context.Context, sessionID string) ([]byte, error) {
	current, err := s.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	data, err := Export(current)
	if err != nil {
		return nil, errors.WrapInternal("failed to export scene", err)
	}
	return data, nil
}

// StartAnimation begins periodic regeneration for the session. Starting an
// animating session changes nothing.
func (s *Service) StartAnimation(sessionID string) AnimationStatus {
	started := s.animator.Start(sessionID, func(ctx context.Context) error {
		_, err := s.Generate(ctx, sessionID)
		return err
	})

	if started {
		s.logger.Info("Scene animation started", "component", "scene_service", "active", s.animator.Active())
	}
	return AnimationStatus{Animating: s.animator.Running(sessionID), Changed: started}
}

func (s *Service) StopAnimation(sessionID string) AnimationStatus {
	stopped := s.animator.Stop(sessionID)

	if stopped {
		s.logger.Info("Scene animation stopped", "component", "scene_service", "active", s.animator.Active())
	}
	return AnimationStatus{Animating: s.animator.Running(sessionID), Changed: stopped}
}

func (s *Service) Animating(sessionID string) AnimationStatus {
	return AnimationStatus{Animating: s.animator.Running(sessionID)}
}

func (s *Service) ActiveAnimations() int {
	return s.animator.Active()
}

func (s *Service) Backend() string {
	return s.repo.Backend()
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Shutdown stops every running animation.
func (s *Service) Shutdown() {
	s.logger.Info("Stopping scene animations", "component", "scene_service", "active", s.animator.Active())
	s.animator.StopAll()
}
