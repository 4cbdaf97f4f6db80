package community

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *RepoMock) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *RepoMock) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *RepoMock) AddAnswer(ctx context.Context, questionID string, a models.Answer) (*models.Answer, error) {
	args := m.Called(ctx, questionID, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Answer), args.Error(1)
}

func (m *RepoMock) SetVote(ctx context.Context, questionID, userUID, vote string) error {
	return m.Called(ctx, questionID, userUID, vote).Error(0)
}

func (m *RepoMock) CreateReview(ctx context.Context, r models.Review) (*models.Review, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *RepoMock) ListReviews(ctx context.Context) ([]*models.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_CreateQuestion_AuthorName(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		userErr  error
		wantName string
	}{
		{name: "имя из профиля", user: &models.User{UUID: "u1", Name: "John"}, wantName: "John"},
		{name: "пользователь не найден", userErr: repository.ErrNotFound, wantName: models.UnknownUserName},
		{name: "ошибка хранилища", userErr: errors.New("db error"), wantName: models.UnknownUserName},
		{name: "пустое имя", user: &models.User{UUID: "u1"}, wantName: models.UnknownUserName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.user != nil {
				repo.On("GetUser", mock.Anything, "u1").Return(tt.user, nil)
			} else {
				repo.On("GetUser", mock.Anything, "u1").Return(nil, tt.userErr)
			}
			repo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q models.Question) bool {
				return q.UserName == tt.wantName && q.Title == "Warm up?"
			})).Return(&models.Question{ID: "q1", UserName: tt.wantName}, nil)

			q, err := New(repo, newNoopLogger()).CreateQuestion(context.Background(), "u1",
				models.QuestionRequest{Title: "Warm up?", Body: "How long?"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, q.UserName)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Vote(t *testing.T) {
	tests := []struct {
		name    string
		vote    string
		getErr  error
		wantErr error
	}{
		{name: "like", vote: models.VoteLike},
		{name: "dislike", vote: models.VoteDislike},
		{name: "неизвестный голос", vote: "love", wantErr: ErrInvalidVote},
		{name: "вопрос не найден", vote: models.VoteLike, getErr: repository.ErrNotFound, wantErr: ErrQuestionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.getErr != nil {
				repo.On("GetQuestion", mock.Anything, "q1").Return(nil, tt.getErr)
			} else {
				repo.On("GetQuestion", mock.Anything, "q1").Return(&models.Question{ID: "q1", Likes: []string{"u1"}}, nil)
				repo.On("SetVote", mock.Anything, "q1", "u1", tt.vote).Return(nil)
			}

			q, err := New(repo, newNoopLogger()).Vote(context.Background(), "q1", "u1", tt.vote)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "SetVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "q1", q.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_AddAnswer(t *testing.T) {
	t.Run("ответ сохранен", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetQuestion", mock.Anything, "q1").Return(&models.Question{ID: "q1"}, nil)
		repo.On("GetUser", mock.Anything, "u2").Return(&models.User{Name: "Jane"}, nil)
		repo.On("AddAnswer", mock.Anything, "q1", models.Answer{UserUID: "u2", UserName: "Jane", Body: "10 min"}).
			Return(&models.Answer{ID: "a1", UserName: "Jane", Body: "10 min"}, nil)

		a, err := New(repo, newNoopLogger()).AddAnswer(context.Background(), "q1", "u2", models.AnswerRequest{Body: "10 min"})
		require.NoError(t, err)
		assert.Equal(t, "a1", a.ID)
	})

	t.Run("вопрос не найден", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetQuestion", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

		_, err := New(repo, newNoopLogger()).AddAnswer(context.Background(), "missing", "u2", models.AnswerRequest{Body: "x"})
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})
}

func TestService_CreateReview(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, "u1").Return(&models.User{Name: "John"}, nil)
	repo.On("CreateReview", mock.Anything, models.Review{UserUID: "u1", UserName: "John", Rating: 5, Comment: "Great"}).
		Return(&models.Review{ID: "r1", UserName: "John", Rating: 5, Comment: "Great"}, nil)

	r, err := New(repo, newNoopLogger()).CreateReview(context.Background(), "u1", models.ReviewRequest{Rating: 5, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	repo.AssertExpectations(t)
}

func TestService_ListReviews_StorageError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListReviews", mock.Anything).Return(nil, errors.New("db error"))

	_, err := New(repo, newNoopLogger()).ListReviews(context.Background())
	assert.Error(t, err)
}
