package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// CreateQuestion сохраняет вопрос.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error) {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.DB.QueryRowContext(ctx, `INSERT INTO questions (user_uid, user_name, title, body)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`,
		q.UserUID, q.UserName, q.Title, q.Body).Scan(&q.ID, &q.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	q.Answers = []models.Answer{}
	q.Likes = []string{}
	q.Dislikes = []string{}
	return &q, nil
}

// ListQuestions возвращает вопросы с ответами и голосами, новые первыми.
func (s *Storage) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	const op = "storage.ListQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	questions, err := s.queryQuestions(ctx, `SELECT id, user_uid, user_name, title, body, created_at
			  FROM questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.attachAnswersAndVotes(ctx, questions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return questions, nil
}

// GetQuestion возвращает вопрос с ответами и голосами.
func (s *Storage) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	const op = "storage.GetQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	questions, err := s.queryQuestions(ctx, `SELECT id, user_uid, user_name, title, body, created_at
			  FROM questions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err = s.attachAnswersAndVotes(ctx, questions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return questions[0], nil
}

// AddAnswer добавляет ответ к вопросу.
func (s *Storage) AddAnswer(ctx context.Context, questionID string, a models.Answer) (*models.Answer, error) {
	const op = "storage.AddAnswer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.DB.QueryRowContext(ctx, `INSERT INTO question_answers (question_id, user_uid, user_name, body)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`,
		questionID, a.UserUID, a.UserName, a.Body).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &a, nil
}

// SetVote сохраняет голос пользователя за вопрос, заменяя предыдущий.
func (s *Storage) SetVote(ctx context.Context, questionID, userUID, vote string) error {
	const op = "storage.SetVote"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `INSERT INTO question_votes (question_id, user_uid, vote)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (question_id, user_uid) DO UPDATE SET vote = EXCLUDED.vote`,
		questionID, userUID, vote); err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

func (s *Storage) queryQuestions(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Question, 0)
	for rows.Next() {
		q := models.Question{Answers: []models.Answer{}, Likes: []string{}, Dislikes: []string{}}
		if err = rows.Scan(&q.ID, &q.UserUID, &q.UserName, &q.Title, &q.Body, &q.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &q)
	}
	return result, rows.Err()
}

func (s *Storage) attachAnswersAndVotes(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	byID := make(map[string]*models.Question, len(questions))
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, question_id, user_uid, user_name, body, created_at
			  FROM question_answers
			  WHERE question_id::text = ANY($1)
			  ORDER BY created_at`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			a          models.Answer
			questionID string
		)
		if err = rows.Scan(&a.ID, &questionID, &a.UserUID, &a.UserName, &a.Body, &a.CreatedAt); err != nil {
			_ = rows.Close()
			return err
		}
		byID[questionID].Answers = append(byID[questionID].Answers, a)
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	rows, err = s.DB.QueryContext(ctx, `SELECT question_id, user_uid, vote
			  FROM question_votes
			  WHERE question_id::text = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var questionID, userUID, vote string
		if err = rows.Scan(&questionID, &userUID, &vote); err != nil {
			return err
		}
		q := byID[questionID]
		if vote == models.VoteLike {
			q.Likes = append(q.Likes, userUID)
		} else {
			q.Dislikes = append(q.Dislikes, userUID)
		}
	}
	return rows.Err()
}
