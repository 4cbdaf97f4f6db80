package models

import "time"

const (
	// VoteLike голос "нравится"
	VoteLike = "like"
	// VoteDislike голос "не нравится"
	VoteDislike = "dislike"
)

// Question вопрос на доске сообщества.
type Question struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"userId"`
	UserName  string    `json:"userName"`
	Title     string    `json:"title"`
	Body      string    `json:"question"`
	Answers   []Answer  `json:"answers"`
	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Answer ответ на вопрос.
type Answer struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"userId"`
	UserName  string    `json:"userName"`
	Body      string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review отзыв о зале.
type Review struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuestionRequest входные данные нового вопроса.
type QuestionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"question" validate:"required"`
}

// AnswerRequest входные данные ответа.
type AnswerRequest struct {
	Body string `json:"answer" validate:"required"`
}

// ReviewRequest входные данные отзыва.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
