// Package progress tracks pipeline progress and broadcasts it to
// registered listeners.
package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of the slideshow pipeline
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageParsing      Stage = "parsing"
	StageCataloging   Stage = "cataloging"
	StagePoster       Stage = "poster"
	StageProbing      Stage = "probing"
	StagePlanning     Stage = "planning"
	StageRendering    Stage = "rendering"
	StageAssembling   Stage = "assembling"
	StageEncoding     Stage = "encoding"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event represents a progress event
type Event struct {
	Stage        Stage         `json:"stage"`
	Progress     float64       `json:"progress"`
	Message      string        `json:"message"`
	Timestamp    time.Time     `json:"timestamp"`
	SlideDetails *SlideDetails `json:"slideDetails,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// SlideDetails contains information about slide rendering progress
type SlideDetails struct {
	TotalSlides    int `json:"totalSlides"`
	RenderedSlides int `json:"renderedSlides"`
}

// Tracker manages progress tracking for one pipeline run
type Tracker struct {
	mu           sync.RWMutex
	stage        Stage
	progress     float64
	message      string
	slideDetails *SlideDetails
	err          error
	listeners    []func(Event)
}

// NewTracker creates a new Tracker instance
func NewTracker() *Tracker {
	return &Tracker{
		stage:     StageInitializing,
		listeners: make([]func(Event), 0),
	}
}

// AddListener adds a new progress event listener
func (t *Tracker) AddListener(listener func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// Update updates the stage and notifies all listeners
func (t *Tracker) Update(stage Stage, progress float64, message string) {
	t.mu.Lock()
	t.stage = stage
	t.progress = progress
	t.message = message
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     stage,
		Progress:  progress,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// UpdateSlideProgress updates slide rendering progress
func (t *Tracker) UpdateSlideProgress(renderedSlides, totalSlides int) {
	t.mu.Lock()
	t.slideDetails = &SlideDetails{
		TotalSlides:    totalSlides,
		RenderedSlides: renderedSlides,
	}
	details := t.slideDetails
	stage := t.stage
	var progress float64
	if totalSlides > 0 {
		progress = float64(renderedSlides) / float64(totalSlides) * 100
	}
	t.progress = progress
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:        stage,
		Progress:     progress,
		Timestamp:    time.Now(),
		SlideDetails: details,
	})
}

// SetError sets an error state and notifies all listeners
func (t *Tracker) SetError(err error) {
	t.mu.Lock()
	t.stage = StageError
	t.err = err
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     StageError,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

// notifyListeners sends an event to all registered listeners
func (t *Tracker) notifyListeners(event Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, listener := range t.listeners {
		listener(event)
	}
}

// GetCurrentState returns the current progress state
func (t *Tracker) GetCurrentState() Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	event := Event{
		Stage:        t.stage,
		Progress:     t.progress,
		Message:      t.message,
		Timestamp:    time.Now(),
		SlideDetails: t.slideDetails,
	}
	if t.err != nil {
		event.Error = t.err.Error()
	}
	return event
}
