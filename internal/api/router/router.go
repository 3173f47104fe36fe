package router

import (
	"os"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/portfolio/docs"
	"github.com/d60-Lab/portfolio/internal/api/handler"
	"github.com/d60-Lab/portfolio/internal/api/middleware"
	"github.com/d60-Lab/portfolio/internal/web"
	"github.com/d60-Lab/portfolio/pkg/response"
)

// Options 路由可选组件
type Options struct {
	Mode        string // gin mode
	StaticDir   string
	Swagger     bool
	Sentry      bool
	Tracing     bool
	ServiceName string
}

// New 构建 gin 引擎并注册全部路由
func New(h *handler.Handler, opts Options) (*gin.Engine, error) {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	response.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	if opts.StaticDir != "" {
		if fi, err := os.Stat(opts.StaticDir); err == nil && fi.IsDir() {
			r.Static("/static", opts.StaticDir)
		}
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/healthz", h.Health)
	r.GET("/", h.Home)
	r.GET("/daily-routine", h.DailyRoutine)

	api := r.Group("/api")
	{
		routine := api.Group("/routine")
		routine.POST("/post", h.CreatePost)
		routine.POST("/reply/:post_id", h.AddReply)
		routine.GET("/posts", h.ListPosts)

		api.POST("/contact", h.Contact)

		blogs := api.Group("/blogs")
		blogs.POST("", h.CreateBlog)
		blogs.GET("", h.ListBlogs)
		blogs.PUT("/:blog_id", h.UpdateBlog)
		blogs.DELETE("/:blog_id", h.DeleteBlog)
	}
	return r, nil
}
