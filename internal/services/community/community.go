// Package community содержит доску вопросов и отзывы о зале.
package community

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

var (
	// ErrQuestionNotFound вопрос не найден.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidVote голос не like и не dislike.
	ErrInvalidVote = errors.New("invalid vote")
)

// Repository определяет методы хранилища для вопросов и отзывов.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]*models.Question, error)
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	AddAnswer(ctx context.Context, questionID string, a models.Answer) (*models.Answer, error)
	SetVote(ctx context.Context, questionID, userUID, vote string) error
	CreateReview(ctx context.Context, r models.Review) (*models.Review, error)
	ListReviews(ctx context.Context) ([]*models.Review, error)
}

// Service реализует вопросы, ответы, голоса и отзывы.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) authorName(ctx context.Context, userUID string) string {
	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed to load author", slog.String("user_uid", userUID), sl.Err(err))
		}
		return models.UnknownUserName
	}
	if u.Name == "" {
		return models.UnknownUserName
	}
	return u.Name
}

// ListQuestions возвращает вопросы с ответами и голосами.
func (s *Service) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	const op = "community.ListQuestions"
	list, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// CreateQuestion публикует вопрос от имени пользователя.
func (s *Service) CreateQuestion(ctx context.Context, userUID string, req models.QuestionRequest) (*models.Question, error) {
	const op = "community.CreateQuestion"
	q, err := s.repo.CreateQuestion(ctx, models.Question{
		UserUID:  userUID,
		UserName: s.authorName(ctx, userUID),
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("question created", slog.String("question_id", q.ID), slog.String("user_uid", userUID))
	return q, nil
}

// AddAnswer добавляет ответ к существующему вопросу.
func (s *Service) AddAnswer(ctx context.Context, questionID, userUID string, req models.AnswerRequest) (*models.Answer, error) {
	const op = "community.AddAnswer"
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a, err := s.repo.AddAnswer(ctx, questionID, models.Answer{
		UserUID:  userUID,
		UserName: s.authorName(ctx, userUID),
		Body:     req.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Vote ставит голос пользователя. Новый голос заменяет противоположный.
func (s *Service) Vote(ctx context.Context, questionID, userUID, vote string) (*models.Question, error) {
	const op = "community.Vote"
	if vote != models.VoteLike && vote != models.VoteDislike {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidVote)
	}
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetVote(ctx, questionID, userUID, vote); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return q, nil
}

func (s *Service) ensureQuestion(ctx context.Context, id string) error {
	_, err := s.repo.GetQuestion(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrQuestionNotFound
	}
	return err
}

// ListReviews возвращает отзывы.
func (s *Service) ListReviews(ctx context.Context) ([]*models.Review, error) {
	const op = "community.ListReviews"
	list, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// CreateReview сохраняет отзыв пользователя.
func (s *Service) CreateReview(ctx context.Context, userUID string, req models.ReviewRequest) (*models.Review, error) {
	const op = "community.CreateReview"
	r, err := s.repo.CreateReview(ctx, models.Review{
		UserUID:  userUID,
		UserName: s.authorName(ctx, userUID),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("review created", slog.String("review_id", r.ID), slog.Int("rating", r.Rating))
	return r, nil
}
