package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerFiredMsg struct {
	id int
}

// Scheduler turns engine timers into Bubble Tea ticks so callbacks run inside Update.
type Scheduler struct {
	next   int
	tasks  map[int]func()
	queued []tea.Cmd
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: map[int]func(){}}
}

// AfterFunc implements selection.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.next++
	id := s.next
	s.tasks[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return func() bool {
		_, pending := s.tasks[id]
		delete(s.tasks, id)
		return pending
	}
}

// fire runs the task for id unless it was stopped.
func (s *Scheduler) fire(id int) bool {
	f, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	f()
	return true
}

// drain returns the ticks scheduled since the last call.
func (s *Scheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
