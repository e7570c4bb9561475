package cron

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/novavoice/novavoice_go_server/internal/service"
)

type Service struct {
	quotaService *service.QuotaService
	stopChan     chan struct{}
}

func NewService(quotaService *service.QuotaService) *Service {
	return &Service{
		quotaService: quotaService,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyAllowanceReset()
	go s.runTempCleanup()
	log.Println("Cron service started (allowance reset + temp cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyAllowanceReset 每日配额重置任务（UTC 零点）
func (s *Service) runDailyAllowanceReset() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.resetAllowances()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) resetAllowances() {
	log.Println("Starting daily allowance reset...")
	if err := s.quotaService.ResetAllAllowances(); err != nil {
		log.Printf("Failed to reset daily allowances: %v", err)
		return
	}
	log.Println("Daily allowance reset completed")
}

// runTempCleanup 每小时清理合成引擎残留的临时 wav 文件
func (s *Service) runTempCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			cleaned := cleanupSynthTempFiles(1 * time.Hour)
			if cleaned > 0 {
				log.Printf("Cleanup summary: temp wav files=%d", cleaned)
			}
		}
	}
}

// cleanupSynthTempFiles 删除超过 expire 时长的 synth_*.wav 临时文件。
// 正常路径下引擎自己会删除，这里兜底处理进程被杀等残留。
func cleanupSynthTempFiles(expire time.Duration) int {
	tmpDir := os.TempDir()
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		log.Printf("Cleanup temp: failed to read dir %s: %v", tmpDir, err)
		return 0
	}

	cleaned := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "synth_") || !strings.HasSuffix(entry.Name(), ".wav") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > expire {
			path := filepath.Join(tmpDir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("Cleanup temp: failed to remove %s: %v", path, err)
			} else {
				cleaned++
			}
		}
	}
	return cleaned
}

// RunNow 立即执行配额重置（用于测试或手动触发）
func (s *Service) RunNow() error {
	log.Println("Manual allowance reset triggered...")
	return s.quotaService.ResetAllAllowances()
}
