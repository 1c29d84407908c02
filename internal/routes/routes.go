package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/pllus/articles-server/config"
	"github.com/pllus/articles-server/database"
	"github.com/pllus/articles-server/internal/auth"
	"github.com/pllus/articles-server/internal/controllers"
	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/services"
)

type Deps struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Verifier     auth.Verifier
	Issuer       controllers.TokenIssuer
	Recorder     services.ToggleRecorder
	Timeout      time.Duration
	CookieSecure bool
}

type Handlers struct {
	Health    *controllers.HealthHandler
	Auth      *controllers.AuthHandler
	Articles  *controllers.ArticleHandler
	Comments  *controllers.CommentHandler
	Bookmarks *controllers.BookmarkHandler
	Verifier  auth.Verifier
}

// NewHandlers builds the Mongo backed repositories and services.
func NewHandlers(d Deps) Handlers {
	colArticles := d.DB.Collection(config.CollArticles)
	colComments := d.DB.Collection(config.CollComments)
	colBookmarks := d.DB.Collection(config.CollBookmarks)

	articles := &repository.ArticleRepository{
		Client:       d.Client,
		ColArticles:  colArticles,
		ColComments:  colComments,
		ColBookmarks: colBookmarks,
	}
	comments := &repository.CommentRepository{
		Client:      d.Client,
		ColComments: colComments,
		ColArticles: colArticles,
	}
	bookmarks := &repository.BookmarkRepository{
		ColBookmarks: colBookmarks,
		ColArticles:  colArticles,
	}

	return Handlers{
		Health: &controllers.HealthHandler{
			Ping: func(ctx context.Context) error { return database.Ping(ctx, d.Client) },
		},
		Auth: &controllers.AuthHandler{Issuer: d.Issuer, CookieSecure: d.CookieSecure},
		Articles: &controllers.ArticleHandler{
			Repo:    articles,
			Likes:   &services.LikeService{Store: articles, Recorder: d.Recorder},
			Timeout: d.Timeout,
		},
		Comments: &controllers.CommentHandler{
			Repo:     comments,
			Comments: &services.CommentService{Store: comments},
			Timeout:  d.Timeout,
		},
		Bookmarks: &controllers.BookmarkHandler{
			Repo:      bookmarks,
			Bookmarks: &services.BookmarkService{Store: bookmarks, Recorder: d.Recorder},
			Timeout:   d.Timeout,
		},
		Verifier: d.Verifier,
	}
}

func Register(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.Root)
	app.Get("/healthz", h.Health.Healthz)

	AuthRoutes(app, h)
	ArticleRoutes(app, h)
	CommentRoutes(app, h)
	BookmarkRoutes(app, h)
}
