package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TempHarvest/internal/model"
)

// maxListedFailures bounds the failure list in a chat message.
const maxListedFailures = 10

// FormatRunSummary formats a finished run into a Telegram message.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	status := "✅"
	if len(s.Failures) > 0 {
		status = "⚠️"
	}
	b.WriteString(fmt.Sprintf("%s <b>TempHarvest</b> | %s\n\n", status, html.EscapeString(s.City)))
	b.WriteString(fmt.Sprintf("范围: %s ~ %s (%d 个月)\n", s.Start, s.End, s.Months))
	b.WriteString(fmt.Sprintf("记录数: %d\n", s.Records))
	b.WriteString(fmt.Sprintf("失败: %d\n", len(s.Failures)))
	if !s.FinishedAt.IsZero() {
		b.WriteString(fmt.Sprintf("耗时: %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Second)))
	}
	if s.CSVPath != "" {
		b.WriteString(fmt.Sprintf("文件: <code>%s</code>\n", html.EscapeString(s.CSVPath)))
	}
	if len(s.Failures) > 0 {
		b.WriteString("\n" + FormatFailures(s.Failures))
	}
	return b.String()
}

// FormatFailures lists failed months with their URLs for manual retry.
func FormatFailures(failures []model.MonthFailure) string {
	if len(failures) == 0 {
		return "没有失败的月份"
	}
	var b strings.Builder
	b.WriteString("❌ <b>失败月份:</b>\n")
	for i, f := range failures {
		if i == maxListedFailures {
			b.WriteString(fmt.Sprintf("  … 另有 %d 项\n", len(failures)-maxListedFailures))
			break
		}
		b.WriteString(fmt.Sprintf("  %s [%s] %s\n", f.Key, f.Kind, html.EscapeString(f.URL)))
	}
	return b.String()
}

// FormatHelp lists the supported chat commands.
func FormatHelp() string {
	return "可用命令:\n• /status 查看最近一次运行\n• /failures 查看失败月份\n• /run 立即采集"
}
