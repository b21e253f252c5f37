package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/gqlview/internal/view"
)

// watchInit is the first frame of a /watch session.
type watchInit struct {
	Query         string              `json:"query"`
	OperationName string              `json:"operationName,omitempty"`
	Introspection jsoniter.RawMessage `json:"introspection,omitempty"`
	PerPage       int                 `json:"perPage,omitempty"`
}

const (
	writeWait = 10 * time.Second
	initWait  = 30 * time.Second
)

// watch streams one table state per snapshot frame. Snapshots that cannot
// be applied are answered with an error frame and the session continues.
func (s *Server) watch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	if s.opt.MaxBodyBytes > 0 {
		conn.SetReadLimit(s.opt.MaxBodyBytes)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var init watchInit
	_ = conn.SetReadDeadline(time.Now().Add(initWait))
	if err := s.readFrame(conn, &init); err != nil {
		s.closeWith(conn, err)
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	tbl, err := s.watchTable(ctx, init)
	if err != nil {
		s.closeWith(conn, err)
		return
	}

	in := make(chan view.Snapshot)
	var readErr error
	go func() {
		defer close(in)
		for {
			var snap view.Snapshot
			if err := s.readFrame(conn, &snap); err != nil {
				readErr = err
				return
			}
			select {
			case in <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	werr := tbl.Watch(ctx, in, func(state *view.TableState, err error) error {
		if err != nil {
			return s.writeFrame(conn, toAPIErrors(err))
		}
		return s.writeFrame(conn, state)
	})
	cancel()
	if werr != nil {
		// unblocks the reader
		conn.Close()
	}
	for range in {
	}
	var reqErr *requestError
	if werr == nil && errors.As(readErr, &reqErr) {
		s.closeWith(conn, readErr)
	}
}

func (s *Server) watchTable(ctx context.Context, init watchInit) (*view.Table, error) {
	doc, err := parseOperation(init.Query, init.OperationName)
	if err != nil {
		return nil, err
	}
	t, err := s.schemaFor(init.Introspection)
	if err != nil {
		return nil, err
	}
	perPage := init.PerPage
	if perPage == 0 {
		perPage = s.opt.PerPage
	}
	return view.NewTable(ctx, doc, t, view.WithPerPage(perPage))
}

// readFrame reads one text frame into v. Undecodable frames are reported
// as *requestError.
func (s *Server) readFrame(conn *websocket.Conn, v any) error {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errorf("invalid JSON")
	}
	return nil
}

func (s *Server) writeFrame(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// closeWith sends err as an error frame and closes the session.
func (s *Server) closeWith(conn *websocket.Conn, err error) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return
	}
	_ = s.writeFrame(conn, toAPIErrors(err))
	code := websocket.CloseInternalServerErr
	if status := statusFor(err); status < http.StatusInternalServerError {
		code = websocket.ClosePolicyViolation
	}
	msg := websocket.FormatCloseMessage(code, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
