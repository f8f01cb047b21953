package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mbongaa/Jamaa-Shifa/caption"
	"github.com/Mbongaa/Jamaa-Shifa/feed"
	"github.com/Mbongaa/Jamaa-Shifa/log"
	"github.com/Mbongaa/Jamaa-Shifa/prefs"
	"github.com/Mbongaa/Jamaa-Shifa/shutdown"
	"github.com/Mbongaa/Jamaa-Shifa/update"
)

var version = "dev"

var shutdownOnce sync.Once

func main() {
	run()
}

// runUpdate handles the "shifa update" subcommand: check, confirm, swap.
func runUpdate() {
	if version == "dev" {
		fmt.Println("Dev build — cannot check for updates.")
		os.Exit(0)
	}
	fmt.Printf("shifa %s — checking for updates...\n", version)
	rel, err := update.CheckLatest(version)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if rel == nil {
		fmt.Println("Already up to date.")
		os.Exit(0)
	}
	fmt.Printf("Update available: %s -> %s\n", version, rel.Version)
	fmt.Print("Continue? [y/N] ")
	var answer string
	fmt.Scanln(&answer)
	if answer != "y" && answer != "Y" {
		fmt.Println("Aborted.")
		os.Exit(0)
	}
	fmt.Printf("Downloading %s...\n", rel.Version)
	if err := update.Apply(rel); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated to %s\n", rel.Version)
	os.Exit(0)
}

func run() {
	if len(os.Args) > 1 && os.Args[1] == "update" {
		runUpdate()
		return
	}

	urlFlag := flag.String("url", feed.DefaultURL, "WebSocket feed address")
	sourceFlag := flag.String("source", "ar", "Source (transcription) language tag")
	targetFlag := flag.String("target", "nl", "Target (translation) language tag")
	linesFlag := flag.Int("lines", caption.DefaultCapacity, "Visible translation lines")
	retryFlag := flag.Duration("retry", feed.DefaultRetryInterval, "Reconnect interval (constant, e.g. 3s)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	flag.Parse()

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *versionFlag {
		fmt.Printf("shifa %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(*urlFlag, *sourceFlag, *targetFlag)
	}

	prefsPath, err := prefs.Path()
	if err != nil {
		log.Warnf("prefs path unavailable: %v", err)
		prefsPath = ""
	}
	pf := prefs.Load(prefsPath)

	// One engine instance set per display session; everything below is
	// wired explicitly, nothing ambient.
	tui := newTUISink()
	var sink DisplaySink = tui
	if *testFlag {
		sink = headlessSink{}
	}

	lines := caption.NewLineBuffer(*linesFlag, sink.LinesChanged)
	words := caption.NewWordBuffer(sink.WordsChanged)

	cfg := feed.Config{
		URL:            *urlFlag,
		SourceLanguage: *sourceFlag,
		TargetLanguage: *targetFlag,
		RetryInterval:  *retryFlag,
		Words:          words,
		Lines:          lines,
		OnState:        sink.ConnectionState,
		OnStatus:       sink.Status,
	}

	var headlessDone chan struct{}
	if *testFlag {
		headlessDone = make(chan struct{})
		cfg.Dial = stdinDial(headlessDone)
	}

	conn := feed.New(cfg)

	var p *tea.Program
	quit := func() {
		shutdownOnce.Do(func() {
			log.SessionEnd(len(lines.Snapshot()), len(words.Snapshot()))
			conn.Close()
			log.Close()
			if p != nil {
				p.Quit()
			}
			os.Exit(0)
		})
	}
	shutdown.OnSignal(quit)

	if *testFlag {
		conn.Connect()
		<-headlessDone
		quit()
		return
	}

	update.StartBackgroundCheck(version, log.Dir(), func(rel update.Release) {
		sink.Status("update available: " + rel.Version + " (run: shifa update)")
	})

	m := newTUIModel(pf, prefsPath, words, conn)
	p = tea.NewProgram(m, tea.WithAltScreen())
	tui.attach(p)

	done := make(chan struct{})
	go func() {
		if _, err := p.Run(); err != nil {
			log.Errorf("TUI error: %v", err)
		}
		close(done)
	}()

	conn.Connect()
	<-done
	quit()
}
