package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/config"
	"github.com/d60-Lab/portfolio/internal/repository"
	"github.com/d60-Lab/portfolio/internal/service"
	"github.com/d60-Lab/portfolio/pkg/database"
)

var checkDBCmd = &cobra.Command{
	Use:   "checkdb",
	Short: "Print every routine post with its replies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		return dumpStore(cmd.Context(), cmd.OutOrStdout(), newStore(db))
	},
}

// store checkdb 用到的仓储
type store struct {
	posts   repository.PostRepository
	replies repository.ReplyRepository
	blogs   repository.BlogRepository
}

func newStore(db *gorm.DB) store {
	return store{
		posts:   repository.NewPostRepository(db),
		replies: repository.NewReplyRepository(db),
		blogs:   repository.NewBlogRepository(db),
	}
}

func dumpStore(ctx context.Context, w io.Writer, st store) error {
	posts, err := service.NewRoutineService(st.posts, st.replies, nil).ListPosts(ctx)
	if err != nil {
		return err
	}
	postCount, err := st.posts.Count(ctx)
	if err != nil {
		return err
	}
	replyCount, err := st.replies.Count(ctx)
	if err != nil {
		return err
	}
	blogCount, err := st.blogs.Count(ctx)
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nDAILY ROUTINE DATABASE\n%s\n\n", rule, rule)

	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found in database")
	} else {
		fmt.Fprintf(w, "Total Posts: %d\n\n", postCount)
		for _, p := range posts {
			fmt.Fprintf(w, "POST #%d\n", p.ID)
			fmt.Fprintf(w, "  Message: %s\n", p.Message)
			fmt.Fprintf(w, "  Time: %s\n", p.Timestamp)
			if len(p.Replies) == 0 {
				fmt.Fprintln(w, "  Replies: None")
			} else {
				fmt.Fprintf(w, "  Replies (%d):\n", len(p.Replies))
				for _, r := range p.Replies {
					fmt.Fprintf(w, "    - [%d] %s\n", r.ID, r.Message)
					fmt.Fprintf(w, "      Time: %s\n", r.Timestamp)
				}
			}
			fmt.Fprintln(w)
		}
	}

	// 回复总数包含指向已不存在帖子的回复
	fmt.Fprintf(w, "Total Replies: %d\nTotal Blogs: %d\n%s\n", replyCount, blogCount, rule)
	return nil
}
