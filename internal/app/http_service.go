package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/foodhub-next/internal/logger"
)

const httpReadHeaderTimeout = 10 * time.Second

// HTTPService 承载 gin 引擎；关闭时先等待普通请求结束，再取消基础上下文以结束 WebSocket 推送
type HTTPService struct {
	server     *http.Server
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &HTTPService{baseCtx: baseCtx, cancelBase: cancel}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: httpReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.baseCtx },
		ErrorLog:          logger.StdLogger(),
	}
	return s
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Start 监听并阻塞服务，监听失败立即返回
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.cancelBase()
	return err
}
