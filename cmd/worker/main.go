package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/database"
	"github.com/elmparc/plan_go_server/internal/pkg/mask"
	"github.com/elmparc/plan_go_server/internal/pkg/pubsub"
	"github.com/elmparc/plan_go_server/internal/pkg/queue"
	"github.com/elmparc/plan_go_server/internal/repository"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	followupQueue := queue.NewQueue(rdb, cfg.Queue.FollowupQueue)
	subscriber := pubsub.NewSubscriber(rdb, cfg.Queue.EventChannel)
	reportRepo := repository.NewReportRepository(db)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	// 订阅埋点事件，按事件类型在 Redis 里累加当日计数
	go runEventCounter(ctx, subscriber, rdb)

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	// 启动 worker 循环
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := followupQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop followup: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					if err := deliverFollowup(reportRepo, msg); err != nil {
						log.Printf("Worker %d: followup %d failed: %v", workerID, msg.FollowupID, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
}

// deliverFollowup 发送后续提醒。条件更新先占位，重复投递的消息直接跳过。
func deliverFollowup(reportRepo *repository.ReportRepository, msg *queue.FollowupMessage) error {
	marked, err := reportRepo.MarkFollowupSent(msg.FollowupID, time.Now())
	if err != nil {
		return err
	}
	if !marked {
		return nil // 已发送过
	}

	// 邮件网关尚未接入，先落日志占位
	log.Printf("[followup] delivered to %s (report %d)", mask.Email(msg.Email), msg.ReportRequestID)
	return nil
}

// runEventCounter 消费事件广播，按类型累加当日计数（key: events:<date>:<type>）
func runEventCounter(ctx context.Context, subscriber *pubsub.Subscriber, rdb *redis.Client) {
	events, closeFn := subscriber.Listen(ctx)
	defer closeFn()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			key := fmt.Sprintf("events:%s:%s", time.Now().UTC().Format("2006-01-02"), msg.EventType)
			if err := rdb.Incr(ctx, key).Err(); err != nil {
				log.Printf("Event counter: incr %s failed: %v", key, err)
			}
		}
	}
}
