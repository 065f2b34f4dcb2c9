package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"respkv/internal/command"
	"respkv/internal/common"
	"respkv/internal/config"
	"respkv/internal/database"
	"respkv/internal/observability"
	"respkv/internal/resp"
	"respkv/internal/types"
	"respkv/pkg/connection"
)

// 连接出错时所处的阶段，用于日志和 respkv_connection_errors_total
const (
	StageRead   = "read"
	StageDecode = "decode"
	StageParse  = "parse"
	StageWrite  = "write"
)

type Server struct {
	cfg    config.Config
	db     *database.DB
	logger zerolog.Logger

	mu    sync.Mutex
	conns map[connection.Connection]struct{}
	wg    sync.WaitGroup
}

func NewServer(cfg config.Config, logger zerolog.Logger) (*Server, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	db := database.MakeDB(cfg.Shards)
	observability.ObserveKeyspace(db.Len)

	return &Server{
		cfg:    cfg,
		db:     db,
		logger: logger.With().Str("component", "server").Logger(),
		conns:  make(map[connection.Connection]struct{}),
	}, nil
}

// Store 返回所有连接共享的存储
func (s *Server) Store() types.Storage {
	return s.db
}

// ListenAndServe 监听 cfg.Addr，ctx 取消后关闭监听和所有连接并返回
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}

	if s.cfg.MetricsAddr != "" {
		stop := s.startMetrics(s.cfg.MetricsAddr)
		defer stop()
	}

	return s.Serve(ctx, ln)
}

// Serve 在调用方提供的 listener 上接受连接，返回前会关闭 ln
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}
		ln.Close()
		s.closeAll()
	}()
	defer func() {
		close(stopped)
		s.wg.Wait()
		s.logger.Info().Msg("server stopped")
	}()

	for {
		raw, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn().Err(err).Msg("accept failed")
			continue
		}

		conn := connection.NewTCPConnection(raw, s.cfg.BufferSize)
		if !s.track(conn) {
			conn.Close()
			return nil
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConn(conn)
		}()
	}
}

// track 在关闭过程中返回 false
func (s *Server) track(conn connection.Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn connection.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for conn := range conns {
		conn.Close()
	}
}

func (s *Server) handleConn(conn connection.Connection) {
	log := s.logger.With().Str("conn", conn.ID()).Str("remote", conn.RemoteAddr()).Logger()
	log.Debug().Msg("accept connect success")

	observability.ConnectionOpened()
	defer observability.ConnectionClosed()
	defer conn.Close()

	stage, err := s.serveConn(conn)
	if err == nil {
		return
	}
	// 本端主动关闭或对端断开属于正常结束
	if stage == StageRead && (conn.IsClosed() || isDisconnect(err)) {
		log.Debug().Err(err).Msg("connection closed")
		return
	}

	observability.RecordConnectionError(stage)
	log.Warn().Err(err).Str("stage", stage).Msg("connection terminated")
}

// serveConn 一次读取即一帧，严格按顺序处理，任何错误都会结束循环
func (s *Server) serveConn(conn connection.Connection) (string, error) {
	for {
		chunk, err := conn.ReadChunk()
		if err != nil {
			return StageRead, err
		}

		reply, stage, err := s.process(chunk)
		if err != nil {
			return stage, err
		}

		if _, err := conn.Write(reply); err != nil {
			return StageWrite, err
		}
	}
}

// process 完成 decode -> parse -> execute -> encode
func (s *Server) process(chunk []byte) ([]byte, string, error) {
	start := time.Now()

	frame, err := resp.Decode(chunk)
	if err != nil {
		return nil, StageDecode, fmt.Errorf("decode %q: %w", chunk, err)
	}

	cmd, err := command.FromFrame(frame)
	if err != nil {
		return nil, StageParse, fmt.Errorf("parse %v: %w", frame, err)
	}

	command.Execute(cmd, s.db)
	reply := resp.Encode(command.Response(cmd))

	// FromFrame 成功时 frame 必定是 Array
	line := types.CmdLine(frame.(resp.Array).CmdLine())
	observability.RecordCommand(command.Name(cmd), line.IsWrite(), time.Since(start))
	s.logger.Trace().Str("cmdline", common.JoinArgs(line)).Msg("executed")

	return reply, "", nil
}

func (s *Server) startMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("metrics server shutdown")
		}
	}
}
