// Package lsp serves doc comment diagnostics to editors over the Language
// Server Protocol.
package lsp

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "doclint"

var log = commonlog.GetLogger("doclint.lsp")

// Options tune the server.
type Options struct {
	// Jobs bounds parallel checking, as in driver.Options.
	Jobs int
	// Debounce delays a check after an edit so that bursts of changes are
	// checked once.
	Debounce time.Duration
	// Poll is the interval at which unit files on disk are rescanned. Zero
	// disables the watcher.
	Poll time.Duration
}

type Server struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	opts      Options

	mu        sync.Mutex
	notify    glsp.NotifyFunc
	open      map[string]bool
	published map[string]bool
	timer     *time.Timer
	cancel    context.CancelFunc
	watcher   *Watcher
}

func NewServer(version string, opts Options) *Server {
	ls := &Server{
		version:   version,
		opts:      opts,
		open:      make(map[string]bool),
		published: make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path := uriToPath(*params.RootURI); path != "" {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}
	log.Infof("workspace root %s", rootDir)

	ls.mu.Lock()
	ls.workspace = NewWorkspace(rootDir)
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Errorf("scan workspace: %v", err)
	}
	if ls.opts.Poll > 0 {
		w := NewWatcher(ls.workspace, ls.opts.Poll, ls.isOpen, ls.scheduleCheck)
		ls.mu.Lock()
		ls.watcher = w
		ls.mu.Unlock()
		w.Start()
	}
	ls.scheduleCheck()
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	if ls.timer != nil {
		ls.timer.Stop()
	}
	if ls.cancel != nil {
		ls.cancel()
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)
	if !isUnitPath(path) {
		return nil
	}
	ls.mu.Lock()
	ls.open[path] = true
	ls.mu.Unlock()
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.scheduleCheck()
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)
	if !isUnitPath(path) || len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.workspace.UpdateFile(path, []byte(whole.Text))
		ls.scheduleCheck()
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)
	if !isUnitPath(path) {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()
	// The buffer may have held unsaved edits; fall back to the disk.
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
	}
	ls.scheduleCheck()
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)
	switch {
	case isConfigFile(path):
		if err := ls.workspace.LoadConfig(); err != nil {
			log.Warningf("keeping previous configuration: %v", err)
		}
	case !isUnitPath(path):
		return nil
	case params.Text != nil:
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	default:
		if err := ls.workspace.ScanFile(path); err != nil {
			log.Warningf("rescan %s: %v", path, err)
		}
	}
	ls.scheduleCheck()
	return nil
}

func (ls *Server) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

// scheduleCheck (re)starts the debounce timer. A check already running is
// cancelled since its results would be stale.
func (ls *Server) scheduleCheck() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.timer != nil {
		ls.timer.Stop()
	}
	if ls.cancel != nil {
		ls.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	ls.timer = time.AfterFunc(ls.opts.Debounce, func() {
		ls.check(ctx)
	})
}

// check runs the workspace check and publishes its diagnostics for every
// file, clearing files that no longer exist.
func (ls *Server) check(ctx context.Context) {
	snap, err := ls.workspace.Check(ctx, ls.opts.Jobs)
	if err != nil {
		if ctx.Err() == nil {
			log.Errorf("check workspace: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.notify == nil {
		return
	}
	current := make(map[string]bool, len(snap.Files))
	for _, f := range snap.Files {
		uri := pathToURI(f.Path)
		current[uri] = true
		diags := toProtocol(f.Content, snap.Diagnostics[f.Path])
		if err := snap.Errors[f.Path]; err != nil {
			diags = append(diags, fileError(err))
		}
		ls.notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diags,
		})
	}
	for uri := range ls.published {
		if !current[uri] {
			ls.notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
				URI:         uri,
				Diagnostics: []protocol.Diagnostic{},
			})
		}
	}
	ls.published = current
	log.Debugf("published diagnostics for %d files", len(current))
}

func isUnitPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return path != "" && (ext == ".yaml" || ext == ".yml")
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
