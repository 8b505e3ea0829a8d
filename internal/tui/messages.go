package tui

import (
	"time"

	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/pkg/model"
)

// tickMsg drives the periodic rescan
type tickMsg time.Time

// reportMsg carries a completed scan
type reportMsg model.Report

// purgeMsg carries the outcome of one purge run
type purgeMsg struct {
	attempts []purge.Attempt
	summary  purge.Summary
}
