package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/portfolio/config"
	"github.com/d60-Lab/portfolio/internal/cache"
	"github.com/d60-Lab/portfolio/internal/repository"
	"github.com/d60-Lab/portfolio/internal/service"
	"github.com/d60-Lab/portfolio/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// 压测：N 条帖子，每条 R 条回复，CONC 个写协程；随后测 READS 次列表读取
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := repository.InitSchema(db); err != nil {
		panic(err)
	}

	var lc *cache.ListCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		lc = cache.NewListCache(client, cfg.Redis.TTL)
	}
	svc := service.NewRoutineService(repository.NewPostRepository(db), repository.NewReplyRepository(db), lc)
	ctx := context.Background()

	N := envInt("N", 1000)
	R := envInt("R", 3)
	CONC := envInt("CONC", 1)
	READS := envInt("READS", 50)

	workers := CONC
	if workers > N {
		workers = N
	}
	feed := make(chan int, N)
	for i := 0; i < N; i++ {
		feed <- i
	}
	close(feed)

	writeCh := make(chan time.Duration, N*(R+1))
	done := make(chan struct{}, workers)
	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			for i := range feed {
				st := time.Now()
				p, err := svc.CreatePost(ctx, fmt.Sprintf("post %d", i))
				writeCh <- time.Since(st)
				if err != nil {
					continue
				}
				for j := 0; j < R; j++ {
					st = time.Now()
					_, _ = svc.AddReply(ctx, p.ID, fmt.Sprintf("reply %d/%d", i, j))
					writeCh <- time.Since(st)
				}
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	writeDur := time.Since(t0)
	close(writeCh)
	writes := make([]time.Duration, 0, N*(R+1))
	for d := range writeCh {
		writes = append(writes, d)
	}

	lc.ResetCounters()
	reads := make([]time.Duration, 0, READS)
	var listed int
	for i := 0; i < READS; i++ {
		st := time.Now()
		posts, err := svc.ListPosts(ctx)
		reads = append(reads, time.Since(st))
		if err == nil {
			listed = len(posts)
		}
	}

	fmt.Printf("N=%d, R=%d, CONC=%d, READS=%d, cache=%v\n", N, R, CONC, READS, lc != nil)
	fmt.Printf("Writes total: %v, ops: %d, p50: %v, p95: %v, p99: %v\n",
		writeDur, len(writes), pct(writes, 0.50), pct(writes, 0.95), pct(writes, 0.99))
	fmt.Printf("List posts (%d posts) p50: %v, p95: %v, p99: %v\n",
		listed, pct(reads, 0.50), pct(reads, 0.95), pct(reads, 0.99))
	if lc != nil {
		c := lc.Counters()
		fmt.Printf("Cache hits=%d misses=%d\n", c.Hits, c.Misses)
	}
}
