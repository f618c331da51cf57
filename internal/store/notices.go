package store

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/models"
)

// Notifier receives the user-facing notices emitted by store operations.
type Notifier interface {
	Notify(models.Notice)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(models.Notice)

func (f NotifierFunc) Notify(n models.Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(models.Notice) {})

// MultiNotifier fans a notice out to several notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(n models.Notice) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// LogNotifier writes notices to a [log.Logger]; errors at warn level, everything else at info.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a [LogNotifier].
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n models.Notice) {
	if n.Level == models.NoticeError {
		l.logger.Warn(n.Title, "detail", n.Description)
		return
	}
	l.logger.Info(n.Title, "detail", n.Description)
}

// NoticeLog keeps the most recent notices in memory, oldest first.
type NoticeLog struct {
	limit   int
	notices []models.Notice
}

// NewNoticeLog creates a [NoticeLog] holding at most limit notices. A limit below 1 keeps one.
func NewNoticeLog(limit int) *NoticeLog {
	return &NoticeLog{limit: max(limit, 1)}
}

func (l *NoticeLog) Notify(n models.Notice) {
	l.notices = append(l.notices, n)
	if over := len(l.notices) - l.limit; over > 0 {
		l.notices = append([]models.Notice(nil), l.notices[over:]...)
	}
}

// Latest returns the newest notice.
func (l *NoticeLog) Latest() (models.Notice, bool) {
	if len(l.notices) == 0 {
		return models.Notice{}, false
	}
	return l.notices[len(l.notices)-1], true
}

// All returns a copy of the retained notices.
func (l *NoticeLog) All() []models.Notice {
	return append([]models.Notice(nil), l.notices...)
}

// Len returns the number of retained notices.
func (l *NoticeLog) Len() int { return len(l.notices) }
