package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	merrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/source"
	"github.com/vango-dev/markup/pkg/vdom"
)

// MessageType is the type of a live preview message.
type MessageType string

const (
	MessageHello  MessageType = "hello"
	MessagePatch  MessageType = "patch"
	MessageReload MessageType = "reload"
	MessageError  MessageType = "error"
	MessageClear  MessageType = "clear"
)

// Message is sent to live preview clients as JSON.
type Message struct {
	Type    MessageType `json:"type"`
	Session string      `json:"session,omitempty"`
	Patches []WirePatch `json:"patches,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WirePatch is a vdom.Patch addressed to the browser DOM. Path indexes
// child nodes from the document element. Inserted and replacing nodes are
// carried as rendered markup.
type WirePatch struct {
	Op    string `json:"op"`
	Path  []int  `json:"path"`
	Index int    `json:"index,omitempty"`
	Attr  string `json:"attr,omitempty"`
	Value string `json:"value,omitempty"`
	HTML  string `json:"html,omitempty"`
}

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
)

// session is one connected browser tab.
type session struct {
	id   string
	file string
	conn *websocket.Conn
	send chan []byte
}

// hub tracks live sessions and the last tree of every previewed document.
type hub struct {
	srv      *Server
	upgrader websocket.Upgrader
	logger   *slog.Logger
	fragment *render.Renderer

	mu       sync.Mutex
	sessions map[string]*session
	trees    map[string]*vdom.Node
	closed   bool
}

func newHub(s *Server) *hub {
	return &hub{
		srv: s,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview only
			},
		},
		logger:   s.logger.With("component", "live"),
		fragment: render.NewRenderer(render.RendererConfig{OmitDoctype: true, SkipValidation: true}),
		sessions: make(map[string]*session),
		trees:    make(map[string]*vdom.Node),
	}
}

// serveWS upgrades a request for ?path=<document URL> and keeps the
// session until the client goes away.
func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	file, err := h.srv.resolve(r.URL.Query().Get("path"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		id:   uuid.NewString(),
		file: file,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if !h.register(sess) {
		conn.Close()
		return
	}
	h.logger.Debug("session opened", "session", sess.id, "file", h.srv.rel(file))

	go h.writeLoop(sess)
	h.deliver(sess, Message{Type: MessageHello, Session: sess.id})

	// Keep the connection until the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(sess)
	h.logger.Debug("session closed", "session", sess.id)
}

func (h *hub) register(sess *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[sess.id] = sess
	if _, ok := h.trees[sess.file]; !ok {
		if n, err := source.DecodeFile(sess.file); err == nil {
			h.trees[sess.file] = n
		}
	}
	h.srv.metrics.liveSessions.Inc()
	return true
}

func (h *hub) unregister(sess *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sess.id]; !ok {
		return
	}
	delete(h.sessions, sess.id)
	close(sess.send)
	h.srv.metrics.liveSessions.Dec()
}

func (h *hub) writeLoop(sess *session) {
	defer sess.conn.Close()
	for data := range sess.send {
		sess.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("write failed", "session", sess.id, "error", err)
			return
		}
	}
	sess.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// deliver queues msg for one session. A session whose buffer is full is
// dropped; its client reconnects and reloads.
func (h *hub) deliver(sess *session, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sess.id]; !ok {
		return
	}
	select {
	case sess.send <- data:
	default:
		h.logger.Warn("dropping slow session", "session", sess.id)
		delete(h.sessions, sess.id)
		close(sess.send)
		h.srv.metrics.liveSessions.Dec()
	}
}

// broadcast delivers msg to every session previewing file.
func (h *hub) broadcast(file string, msg Message) int {
	h.mu.Lock()
	var targets []*session
	for _, sess := range h.sessions {
		if sess.file == file {
			targets = append(targets, sess)
		}
	}
	h.mu.Unlock()

	for _, sess := range targets {
		h.deliver(sess, msg)
	}
	return len(targets)
}

// refresh rebuilds a changed document and tells its sessions how to catch
// up: a patch list when the change can be applied in place, otherwise a
// reload or an error overlay.
func (h *hub) refresh(ctx context.Context, c change) {
	_, span := h.srv.tracer.Start(ctx, "markup.live.refresh")
	defer span.End()
	span.SetAttributes(attribute.String("markup.file", h.srv.rel(c.Path)))

	h.mu.Lock()
	prev := h.trees[c.Path]
	watched := false
	for _, sess := range h.sessions {
		if sess.file == c.Path {
			watched = true
			break
		}
	}
	if c.Removed || !watched {
		delete(h.trees, c.Path)
	}
	h.mu.Unlock()

	if !watched {
		return
	}
	if c.Removed {
		h.sendReload(c.Path)
		return
	}

	next, err := source.DecodeFile(c.Path)
	if err != nil {
		span.RecordError(err)
		h.broadcast(c.Path, Message{Type: MessageError, Error: merrors.Classify(err).FormatCompact()})
		return
	}

	h.mu.Lock()
	h.trees[c.Path] = next
	h.mu.Unlock()

	msg, ok := h.patchMessage(prev, next)
	if !ok {
		h.sendReload(c.Path)
		return
	}
	span.SetAttributes(attribute.Int("markup.patches", len(msg.Patches)))
	h.broadcast(c.Path, Message{Type: MessageClear})
	if len(msg.Patches) == 0 {
		return
	}
	n := h.broadcast(c.Path, msg)
	h.srv.metrics.patchesSent.Add(float64(n * len(msg.Patches)))
}

func (h *hub) sendReload(file string) {
	n := h.broadcast(file, Message{Type: MessageReload})
	h.srv.metrics.reloadsSent.Add(float64(n))
}

// patchMessage diffs two trees into browser patches. It reports false when
// the browser DOM cannot be addressed by tree paths.
func (h *hub) patchMessage(prev, next *vdom.Node) (Message, bool) {
	if prev == nil || h.srv.config.Render.Pretty {
		return Message{}, false
	}
	// Fragments are re-parented by the browser, so only whole documents
	// are addressed by path.
	if prev.Element != schema.Html || next.Element != schema.Html || !patchable(prev) || !patchable(next) {
		return Message{}, false
	}
	patches := vdom.Diff(prev, next)
	msg := Message{Type: MessagePatch, Patches: make([]WirePatch, 0, len(patches))}
	for _, p := range patches {
		wp, ok := h.wirePatch(p)
		if !ok {
			return Message{}, false
		}
		msg.Patches = append(msg.Patches, wp)
	}
	return msg, true
}

func (h *hub) wirePatch(p vdom.Patch) (WirePatch, bool) {
	wp := WirePatch{Op: p.Op.String(), Path: []int(p.Path)}
	if wp.Path == nil {
		wp.Path = []int{}
	}
	switch p.Op {
	case vdom.PatchSetText:
		wp.Value = p.Value
	case vdom.PatchSetAttr:
		a := vdom.Attr{Kind: p.Attr, Value: p.Value, On: p.On}
		wp.Attr = a.Name()
		switch {
		case !a.Present():
			wp.Op = vdom.PatchRemoveAttr.String()
		case p.Attr.Domain().Kind != schema.DomainBool:
			wp.Value = p.Value
		}
	case vdom.PatchRemoveAttr:
		wp.Attr = p.Attr.String()
	case vdom.PatchInsertNode, vdom.PatchReplaceNode:
		if len(p.Path) == 0 && p.Op == vdom.PatchReplaceNode {
			return wp, false
		}
		out, err := h.fragment.RenderToString(p.Node)
		if err != nil {
			return wp, false
		}
		wp.Index = p.Index
		wp.HTML = out
	case vdom.PatchRemoveNode:
		if len(p.Path) == 0 {
			return wp, false
		}
	}
	return wp, true
}

// patchable reports whether every node of the tree maps to exactly one
// browser DOM node: no raw markup, no empty text and no adjacent text.
func patchable(root *vdom.Node) bool {
	ok := true
	vdom.Walk(root, vdom.VisitorFuncs{
		EnterFunc: func(n *vdom.Node, _ vdom.Path) error {
			prevText := false
			for _, c := range n.Children {
				isText := c.Kind != vdom.KindElement
				if c.Kind == vdom.KindRaw || (c.Kind == vdom.KindText && c.Text == "") || (isText && prevText) {
					ok = false
					return vdom.SkipChildren
				}
				prevText = isText
			}
			return nil
		},
	})
	return ok
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// close ends every session.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, sess := range h.sessions {
		delete(h.sessions, id)
		close(sess.send)
		h.srv.metrics.liveSessions.Dec()
	}
}

// injectLiveClient inserts the live client script before </body>, or
// appends it when the document has no body end tag.
func injectLiveClient(body []byte) []byte {
	script := []byte(LiveClientScript)
	i := bytes.LastIndex(body, []byte("</body>"))
	if i < 0 {
		return append(body, script...)
	}
	out := make([]byte, 0, len(body)+len(script))
	out = append(out, body[:i]...)
	out = append(out, script...)
	return append(out, body[i:]...)
}

// LiveClientScript connects a page to the live preview socket and applies
// the patches it receives.
const LiveClientScript = `<script>
(function() {
    'use strict';

    var delay = 500;

    function resolve(path) {
        var n = document.documentElement;
        for (var i = 0; i < path.length && n; i++) {
            n = n.childNodes[path[i]];
        }
        return n;
    }

    function parse(html) {
        var t = document.createElement('template');
        t.innerHTML = html;
        return t.content.firstChild;
    }

    function apply(p) {
        var n = resolve(p.path);
        if (!n) { location.reload(); return; }
        switch (p.op) {
            case 'SetText': n.nodeValue = p.value; break;
            case 'SetAttr': n.setAttribute(p.attr, p.value || ''); break;
            case 'RemoveAttr': n.removeAttribute(p.attr); break;
            case 'InsertNode': n.insertBefore(parse(p.html), n.childNodes[p.index] || null); break;
            case 'RemoveNode': n.parentNode.removeChild(n); break;
            case 'ReplaceNode': n.parentNode.replaceChild(parse(p.html), n); break;
        }
    }

    function overlay(text) {
        var el = document.getElementById('__markup_error');
        if (!text) { if (el) el.remove(); return; }
        if (!el) {
            el = document.createElement('pre');
            el.id = '__markup_error';
            el.style.cssText = 'position:fixed;inset:0;margin:0;padding:2rem;background:rgba(20,20,20,.92);color:#ff8080;font:14px monospace;white-space:pre-wrap;z-index:2147483647';
            document.documentElement.appendChild(el);
        }
        el.textContent = text;
    }

    function connect() {
        var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(proto + '//' + location.host + '/_markup/live?path=' + encodeURIComponent(location.pathname));
        ws.onopen = function() { delay = 500; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            switch (msg.type) {
                case 'patch': msg.patches.forEach(apply); break;
                case 'reload': location.reload(); break;
                case 'error': overlay(msg.error); break;
                case 'clear': overlay(''); break;
            }
        };
        ws.onclose = function() {
            setTimeout(function() { delay = Math.min(delay * 2, 10000); connect(); }, delay);
        };
    }

    connect();
})();
</script>`
