package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/renderer"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/scene"
)

// RenderRequest represents a render request parsed from the socket URL
type RenderRequest struct {
	World           string `json:"world"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
	Seed            int64  `json:"seed"`
	Workers         int    `json:"workers"`
}

// Message is one server-to-client websocket frame
type Message struct {
	Type           string `json:"type"` // "log", "frame", "complete", "error"
	Message        string `json:"message,omitempty"`
	ImageData      string `json:"imageData,omitempty"` // base64 PNG
	CompletedLines int    `json:"completedLines,omitempty"`
	TotalLines     int    `json:"totalLines,omitempty"`
	ElapsedMs      int64  `json:"elapsedMs,omitempty"`
}

// frameInterval is how often a partial frame is pushed to the client
const frameInterval = 250 * time.Millisecond

// handleRender upgrades to a websocket, runs one render, and streams log
// lines, partial frames, and the finished image to the client.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Gorilla permits one concurrent writer, so all messages funnel
	// through a single goroutine.
	messages := make(chan Message, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			if err := conn.WriteJSON(msg); err != nil {
				// Client gone; drain remaining messages.
				for range messages {
				}
				return
			}
		}
	}()

	req, err := parseRenderRequest(r)
	if err != nil {
		messages <- Message{Type: "error", Message: fmt.Sprintf("Invalid request: %v", err)}
		close(messages)
		<-done
		return
	}

	s.renderToSocket(req, messages)
	close(messages)
	<-done
}

// parseRenderRequest parses render parameters from the socket URL query
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{World: "cornell"}
	if world := query.Get("world"); world != "" {
		req.World = world
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samplesPerPixel", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 50, 1, 1000); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", time.Now().UnixNano()); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
	return req, nil
}

// frameTracker accumulates finished scanlines so partial frames can be
// encoded while workers are still running.
type frameTracker struct {
	mu        sync.Mutex
	rows      [][]renderer.RGB
	width     int
	completed int
}

func newFrameTracker(width, height int) *frameTracker {
	return &frameTracker{rows: make([][]renderer.RGB, height), width: width}
}

func (ft *frameTracker) addLine(j int, row []renderer.RGB) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.rows[j] = row
	ft.completed++
}

// snapshot returns a copy of the grid with unfinished rows black, plus
// the number of completed lines.
func (ft *frameTracker) snapshot() ([][]renderer.RGB, int) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	rows := make([][]renderer.RGB, len(ft.rows))
	for j, row := range ft.rows {
		if row == nil {
			rows[j] = make([]renderer.RGB, ft.width)
		} else {
			rows[j] = row
		}
	}
	return rows, ft.completed
}

// renderToSocket runs the render and feeds the message channel
func (s *Server) renderToSocket(req *RenderRequest, messages chan<- Message) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)

	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		for consoleMsg := range consoleChan {
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				continue
			}
			select {
			case messages <- Message{Type: "log", Message: string(data)}:
			default:
				// Socket writer is behind; progress frames matter more
				// than log lines.
			}
		}
	}()

	sceneRng := rand.New(rand.NewSource(req.Seed))
	built, err := scene.Build(req.World, sceneRng)
	if err != nil {
		messages <- Message{Type: "error", Message: err.Error()}
		close(consoleChan)
		logWg.Wait()
		return
	}

	cameraConfig := built.Camera
	cameraConfig.AspectRatio = float64(req.Width) / float64(req.Height)
	camera := renderer.NewCamera(cameraConfig)

	params := renderer.RenderingParams{
		ImageWidth:      req.Width,
		ImageHeight:     req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
	}
	r := renderer.NewRenderer(camera, built.World, built.Background, params,
		renderer.RecursiveTracer{MaxDepth: req.MaxDepth}, req.Seed, req.Workers, webLogger)

	webLogger.Printf("Rendering %s at %dx%d, %d spp\n",
		built.Name, req.Width, req.Height, req.SamplesPerPixel)

	tracker := newFrameTracker(req.Width, req.Height)
	start := time.Now()

	renderDone := make(chan [][]renderer.RGB)
	go func() {
		renderDone <- r.Render(tracker.addLine)
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var rows [][]renderer.RGB
	for rows == nil {
		select {
		case <-ticker.C:
			partial, completed := tracker.snapshot()
			if completed == 0 {
				continue
			}
			imageData, err := imageToBase64PNG(partial)
			if err != nil {
				log.Printf("Error encoding partial frame: %v", err)
				continue
			}
			messages <- Message{
				Type:           "frame",
				ImageData:      imageData,
				CompletedLines: completed,
				TotalLines:     req.Height,
				ElapsedMs:      time.Since(start).Milliseconds(),
			}
		case rows = <-renderDone:
		}
	}

	close(consoleChan)
	logWg.Wait()

	imageData, err := imageToBase64PNG(rows)
	if err != nil {
		messages <- Message{Type: "error", Message: fmt.Sprintf("failed to encode image: %v", err)}
		return
	}
	messages <- Message{
		Type:           "complete",
		ImageData:      imageData,
		CompletedLines: req.Height,
		TotalLines:     req.Height,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
}

// imageToBase64PNG converts a pixel grid to a base64-encoded PNG
func imageToBase64PNG(rows [][]renderer.RGB) (string, error) {
	var buf bytes.Buffer
	if err := renderer.WritePNG(&buf, rows); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
