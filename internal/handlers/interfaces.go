package handlers

import (
	"context"

	"postdeck/internal/assistant"
	"postdeck/internal/freepik"
	"postdeck/internal/importer"
	"postdeck/internal/store"
)

type PostStore interface {
	ListPosts(ctx context.Context) ([]store.Post, error)
	GetPost(ctx context.Context, id int) (store.Post, error)
	CreatePost(ctx context.Context, p store.Post) (store.Post, error)
	UpdatePost(ctx context.Context, id int, upd store.PostUpdate) (store.Post, error)
	DeletePost(ctx context.Context, id int) error
}

type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPassword string) (store.User, error)
	GetUserByUsername(ctx context.Context, username string) (store.User, error)
}

type Dispatcher interface {
	Enabled() bool
	Send(ctx context.Context, post store.Post) error
	SendAsync(post store.Post)
}

type Copywriter interface {
	GenerateCaptions(ctx context.Context, req assistant.CaptionRequest) ([]string, error)
	ImproveText(ctx context.Context, text, action string) (string, error)
	SuggestHashtags(ctx context.Context, content, platformID string) ([]assistant.HashtagSuggestion, error)
	ImportantDates(ctx context.Context, month, year int) ([]assistant.ImportantDate, error)
	GeneratePostForDate(ctx context.Context, date, event, description string) (assistant.GeneratedPost, error)
	ParseVideos(ctx context.Context, text string) ([]assistant.VideoIdea, error)
}

type MediaGenerator interface {
	Configured() bool
	CreateImageTask(ctx context.Context, req freepik.ImageRequest) (freepik.Task, error)
	GetImageTask(ctx context.Context, taskID string) (freepik.TaskResult, error)
	CreateVideoTask(ctx context.Context, req freepik.VideoRequest) (freepik.Task, error)
	GetVideoTask(ctx context.Context, taskID, model string) (freepik.TaskResult, error)
}

type BatchImporter interface {
	Import(ctx context.Context, items []importer.Item) importer.Result
}
