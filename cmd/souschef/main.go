// SousChef — an eyes-free kitchen copilot that watches what you add
// and checks it against the recipe.
//
// Usage:
//
//	souschef [-verbose] [-quiet] [-voice] [-recipes dir]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/souschef/internal/conversation"
	"github.com/hammamikhairi/souschef/internal/display"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/estimate"
	"github.com/hammamikhairi/souschef/internal/knowledge"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/ocr"
	"github.com/hammamikhairi/souschef/internal/recipe"
	"github.com/hammamikhairi/souschef/internal/speech"
	"github.com/hammamikhairi/souschef/internal/storage"
	"github.com/hammamikhairi/souschef/internal/validate"
	"github.com/hammamikhairi/souschef/internal/vision"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".souschef-logs/souschef.log", "file to write logs to (use \"stderr\" to log to console)")
	recipesDir := flag.String("recipes", "", "directory of extra recipe files (.yaml/.json)")
	kbFile := flag.String("kb", "", "ingredient knowledge base overlay file (.yaml)")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech even if piper is available")
	piperBin := flag.String("piper-bin", "piper", "path to the piper TTS binary")
	piperVoice := flag.String("piper-voice", "", "path to the piper .onnx voice model (empty disables TTS)")
	voice := flag.Bool("voice", false, "enable voice input via local Whisper STT")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	recordSecs := flag.Int("record-secs", 2, "seconds per voice recording chunk")
	captureCmd := flag.String("capture-cmd", "", "shell command that captures a camera frame to -frame-file")
	frameFile := flag.String("frame-file", ".souschef-frame.jpg", "path where captured frames land")
	ocrLangs := flag.String("ocr-langs", ocr.DefaultLanguages, "tesseract language codes for label reading")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs like
	// the whisper transcriber) to the same output so it doesn't spam
	// the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	recipes := recipe.NewMemorySource(log)
	if *recipesDir != "" {
		if err := recipes.LoadDir(*recipesDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: loading recipes from %s: %v\n", *recipesDir, err)
		}
	}

	kb := knowledge.NewMemoryBase(log)
	if *kbFile != "" {
		if err := kb.LoadFile(*kbFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: loading knowledge base %s: %v\n", *kbFile, err)
		}
	}

	store := storage.NewMemoryStore(log)
	ui := display.NewUI(store)
	textNotifier := conversation.NewCLINotifier(log, ui.Printf)
	parser := conversation.NewKeywordParser(log)

	estimator := estimate.New(log)
	validator := validate.New(kb, log)
	eng := engine.New(recipes, store, kb, estimator, validator, log)

	// Build the active notifier. If TTS is available, wrap the text
	// notifier with a SpeakingNotifier that also speaks through the Mouth.
	var activeNotifier domain.Notifier = textNotifier
	var mouth *speech.Mouth

	if *piperVoice != "" && !*noSpeech {
		ttsClient, err := speech.NewPiperClient(*piperBin, *piperVoice, ".souschef-tts", log)
		if err != nil {
			log.Error("piper init failed, speech disabled: %v", err)
		} else if player, err := speech.NewPlayer(log); err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			mouth = speech.NewMouth(ttsClient, player, log)
			mouth.Start(ctx)
			activeNotifier = speech.NewSpeakingNotifier(textNotifier, mouth, log)
			log.Info("TTS enabled (voice=%s)", *piperVoice)
		}
	} else if !*noSpeech {
		log.Info("TTS disabled: pass -piper-voice to enable")
	}

	// Build the vision analyzer if credentials are available.
	var analyzer domain.FrameAnalyzer
	visionKey := os.Getenv(vision.EnvVisionKey)
	visionEndpoint := os.Getenv(vision.EnvVisionEndpoint)
	if visionKey != "" && visionEndpoint != "" {
		analyzer = vision.NewClient(visionEndpoint, visionKey, log)
		log.Info("vision enabled (endpoint=%s)", visionEndpoint)
	} else {
		log.Info("vision disabled: set %s and %s env vars to enable", vision.EnvVisionKey, vision.EnvVisionEndpoint)
	}

	reader := ocr.NewReader(*ocrLangs, log)

	// Build voice input (STT) if enabled.
	var ear *speech.Ear
	if *voice {
		if _, err := os.Stat(*whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *whisperModel)
			os.Exit(1)
		}
		os.MkdirAll(".souschef-stt", 0o755)
		ear = speech.NewEar(*whisperBin, *whisperModel, mouth, log,
			speech.WithRecordDuration(time.Duration(*recordSecs)*time.Second),
		)
		go ear.Run(ctx)
		log.Info("voice input enabled (bin=%s, model=%s, chunk=%ds)", *whisperBin, *whisperModel, *recordSecs)
	}

	// Build the CLI app.
	app := &cliApp{
		engine:     eng,
		parser:     parser,
		notifier:   activeNotifier,
		mouth:      mouth,
		ear:        ear,
		analyzer:   analyzer,
		reader:     reader,
		captureCmd: *captureCmd,
		frameFile:  *frameFile,
		log:        log,
		ui:         ui,
	}

	fmt.Println(display.RenderBanner())

	if ear != nil {
		fmt.Println(display.BannerStyle.Render("  Voice mode ON — say \"Hey Chef\" to activate, or type commands."))
		fmt.Println(display.BannerStyle.Render("  Type 'quit' to exit."))
	} else {
		fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	}
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	engine     *engine.Engine
	parser     domain.IntentParser
	notifier   domain.Notifier
	mouth      *speech.Mouth        // nil when TTS is disabled
	ear        *speech.Ear          // nil when voice input is disabled
	analyzer   domain.FrameAnalyzer // nil when vision is disabled
	reader     domain.TextReader
	captureCmd string
	frameFile  string
	log        *logger.Logger
	ui         *display.UI
	sessionID  string // current active session
	selected   string // recipe chosen before typing 'start'
}

// say prints a message to the scrollback and queues it for speech at
// the given priority. Use for conversational lines the user should
// hear. For raw formatting (menus, tables) use the ui helpers directly.
func (a *cliApp) say(text string, priority speech.Priority) {
	a.ui.PrintChat(text)
	if a.mouth != nil {
		a.mouth.Say(text, priority)
	}
}

// sayUrgent prints a message in bold red and queues it at high priority.
func (a *cliApp) sayUrgent(text string) {
	a.ui.PrintUrgent(text)
	if a.mouth != nil {
		a.mouth.Say(text, speech.PriorityHigh)
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.say("Hi! I'm your sous-chef. Pick a recipe and I'll walk you through it, keeping an eye on what goes in the pot.", speech.PriorityNormal)
	a.ui.Println("")
	a.showRecipes(ctx)

	// Voice channel (nil-safe: receiving on a nil channel blocks forever,
	// which is fine — select will only use the keyboard case).
	var voiceCh <-chan string
	if a.ear != nil {
		voiceCh = a.ear.C()
	}

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		case input = <-voiceCh:
			// Print what was heard so the user sees it in the REPL.
			a.ui.PrintVoice(input)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		var session *domain.Session
		if a.sessionID != "" {
			s, err := a.engine.Status(ctx, a.sessionID)
			if err == nil {
				session = s
			}
		}

		intent, err := a.parser.Parse(ctx, input, session)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		a.handleIntent(ctx, intent)
	}
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) {
	// Action intents interrupt whatever is currently being spoken so the
	// assistant doesn't keep talking over the new response.
	switch intent.Type {
	case domain.IntentListRecipes, domain.IntentSelectRecipe,
		domain.IntentStartCooking, domain.IntentNextStep, domain.IntentPreviousStep,
		domain.IntentRepeat, domain.IntentCheckQuantity, domain.IntentIdentify,
		domain.IntentStatus, domain.IntentReset, domain.IntentQuit:
		if a.mouth != nil {
			a.mouth.Interrupt()
		}
	}

	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showRecipes(ctx)
	case domain.IntentSelectRecipe:
		a.selectRecipe(ctx, intent.Payload)
	case domain.IntentStartCooking:
		a.startCooking(ctx)
	case domain.IntentNextStep:
		a.advance(ctx)
	case domain.IntentPreviousStep:
		a.previous(ctx)
	case domain.IntentRepeat:
		a.repeat(ctx)
	case domain.IntentCheckQuantity:
		a.checkQuantity(ctx)
	case domain.IntentIdentify:
		a.identify(ctx)
	case domain.IntentStatus:
		a.status(ctx)
	case domain.IntentReset:
		a.reset(ctx)
	case domain.IntentQuit:
		a.quit(ctx)
	case domain.IntentUnknown:
		a.say(fmt.Sprintf("I didn't catch that (%q). Type 'help' for commands.", intent.Payload), speech.PriorityLow)
	}
}

func (a *cliApp) showRecipes(ctx context.Context) {
	recipes, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error loading recipes: %v", err))
		return
	}

	a.ui.PrintStep("Available recipes:")
	a.ui.Println("")
	for i, r := range recipes {
		a.ui.PrintInstruction(fmt.Sprintf("[%d] %s", i+1, r.Name))
		a.ui.PrintHint(r.Description)
		if len(r.Tags) > 0 {
			a.ui.PrintHint("Tags: " + strings.Join(r.Tags, ", "))
		}
		a.ui.Println("")
	}
	a.ui.PrintChat("Pick a recipe by number, or type 'help' for commands.")
}

func (a *cliApp) selectRecipe(ctx context.Context, payload string) {
	recipes, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	// Try numeric selection.
	var idx int
	if _, err := fmt.Sscanf(payload, "%d", &idx); err == nil {
		idx-- // 1-indexed to 0-indexed
		if idx >= 0 && idx < len(recipes) {
			a.showSelected(ctx, recipes[idx].ID)
			return
		}
		a.say(fmt.Sprintf("There's no recipe number %s. Pick one from the list.", payload), speech.PriorityLow)
		return
	}

	// Try name/tag search.
	matches, err := a.engine.SearchRecipes(ctx, payload)
	if err == nil && len(matches) > 0 {
		a.showSelected(ctx, matches[0].ID)
		return
	}

	a.say(fmt.Sprintf("I couldn't find a recipe matching %q.", payload), speech.PriorityLow)
}

func (a *cliApp) showSelected(ctx context.Context, id string) {
	r, err := a.engine.GetRecipe(ctx, id)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.selected = r.ID

	a.ui.PrintStep(fmt.Sprintf("=== %s ===", r.Name))
	a.ui.PrintInstruction(r.Description)
	a.ui.PrintHint(fmt.Sprintf("Serves: %d", r.Serves))

	a.ui.Println("")
	a.ui.PrintStep("Ingredients:")
	for _, ing := range r.Ingredients {
		if ing.Amount > 0 {
			a.ui.PrintInstruction(fmt.Sprintf("  - %g %s %s", ing.Amount, ing.Unit, ing.Name))
		} else {
			a.ui.PrintInstruction("  - " + ing.Name)
		}
	}
	a.ui.PrintHint(fmt.Sprintf("Steps: %d", len(r.Steps)))

	a.say(fmt.Sprintf("%s it is. Say 'start' when your ingredients are ready.", r.Name), speech.PriorityNormal)
}

func (a *cliApp) startCooking(ctx context.Context) {
	if a.selected == "" {
		a.say("Pick a recipe first — say 'list' to see what I know.", speech.PriorityNormal)
		return
	}

	if a.sessionID != "" {
		a.say("You're already cooking. Say 'status' to see where you are.", speech.PriorityNormal)
		return
	}

	session, err := a.engine.StartSession(ctx, a.selected)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error starting session: %v", err))
		return
	}

	a.sessionID = session.ID
	a.say(fmt.Sprintf("Let's cook %s!", session.RecipeName), speech.PriorityNormal)
	a.showCurrentStep(ctx)
}

func (a *cliApp) showCurrentStep(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	step, idx, total, err := a.engine.CurrentStep(ctx, a.sessionID)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	if step == nil {
		a.sessionDone(ctx)
		return
	}

	a.ui.PrintStep(fmt.Sprintf("Step %d/%d", idx+1, total))

	// Safety warnings come before the instruction, always.
	for _, w := range step.Safety {
		a.ui.PrintUrgent("⚠ " + w)
	}
	a.ui.PrintInstruction(step.Instruction)

	if step.Check != nil {
		a.ui.PrintHint(fmt.Sprintf("I'll verify: %g %s of %s — say 'how much' after measuring.",
			step.Check.Amount, step.Check.Unit, step.Check.Ingredient))
	}

	if a.mouth != nil {
		for _, w := range step.Safety {
			a.mouth.Say(w, speech.PriorityCritical)
		}
		a.mouth.Say(fmt.Sprintf("Step %d of %d. %s", idx+1, total, step.Instruction), speech.PriorityNormal)
	}
}

func (a *cliApp) sessionDone(ctx context.Context) {
	summary, err := a.engine.Summarize(ctx, a.sessionID)
	if err == nil {
		a.say(summary.Narrate(), speech.PriorityNormal)
	} else {
		a.say("That's the last step — you're done. Enjoy!", speech.PriorityNormal)
	}
	a.sessionID = ""
	a.selected = ""
}

func (a *cliApp) advance(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	step, err := a.engine.Advance(ctx, a.sessionID)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	if step == nil {
		a.sessionDone(ctx)
		return
	}

	a.showCurrentStep(ctx)
}

func (a *cliApp) previous(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	if _, err := a.engine.Previous(ctx, a.sessionID); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	a.showCurrentStep(ctx)
}

func (a *cliApp) repeat(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	a.showCurrentStep(ctx)
}

// checkQuantity captures a frame, gathers measurement signals from
// vision and OCR, and runs them through the engine. Works with no
// camera at all — the estimator then falls back to its low-confidence
// default and the narration hedges accordingly.
func (a *cliApp) checkQuantity(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	signals := a.gatherSignals(ctx)

	est, result, err := a.engine.CheckQuantity(ctx, a.sessionID, signals)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	a.narrateEstimate(est)
	a.narrateResult(result)
}

// gatherSignals captures a frame and turns vision and OCR output into
// measurement signals. Returns nil when no camera is configured.
func (a *cliApp) gatherSignals(ctx context.Context) []domain.QuantitySignal {
	framePath, err := a.captureFrame(ctx)
	if err != nil {
		a.log.Warn("frame capture failed: %v", err)
		return nil
	}

	var signals []domain.QuantitySignal

	if a.analyzer != nil {
		obs, err := a.analyzer.Analyze(ctx, framePath)
		if err != nil {
			a.log.Error("vision analysis failed: %v", err)
		} else {
			signals = append(signals, estimate.SignalsFromObservation(obs)...)
			for _, u := range obs.Uncertainties {
				a.ui.PrintHint("vision: " + u)
			}
		}
	}

	if text, err := a.reader.ReadText(ctx, framePath); err != nil {
		a.log.Debug("ocr read failed: %v", err)
	} else if strings.TrimSpace(text) != "" {
		signals = append(signals, estimate.OCRSignal(text, 0.7))
	}

	a.log.Debug("gathered %d measurement signals", len(signals))
	return signals
}

// captureFrame runs the configured capture command and returns the
// frame path. With no capture command it falls back to the frame file
// as-is, which lets a static test image stand in for a camera.
func (a *cliApp) captureFrame(ctx context.Context) (string, error) {
	if a.captureCmd != "" {
		cmd := exec.CommandContext(ctx, "sh", "-c", a.captureCmd)
		if out, err := cmd.CombinedOutput(); err != nil {
			return "", fmt.Errorf("capture command: %w (%s)", err, strings.TrimSpace(string(out)))
		}
	}
	if _, err := os.Stat(a.frameFile); err != nil {
		return "", fmt.Errorf("no frame available: %w", err)
	}
	return a.frameFile, nil
}

func (a *cliApp) narrateEstimate(est domain.QuantityEstimate) {
	a.ui.PrintHint("estimate: " + est.String())

	var line string
	switch {
	case est.Method == domain.MethodHeuristic:
		line = fmt.Sprintf("I couldn't get a good look, so I'm assuming about %g %s.", est.Value, est.Unit)
	case est.Confidence < 0.5:
		line = fmt.Sprintf("It looks like roughly %g %s, but I'm not sure.", est.Value, est.Unit)
	default:
		line = fmt.Sprintf("That looks like %g %s.", est.Value, est.Unit)
	}
	a.say(line, speech.PriorityNormal)
}

func (a *cliApp) narrateResult(result domain.ValidationResult) {
	switch result.Status {
	case domain.ValidationNoCheck:
		a.say("This step doesn't need a measured amount, so you're fine.", speech.PriorityLow)
	case domain.ValidationMatch:
		a.say(fmt.Sprintf("Perfect — that matches the %g %s of %s the recipe wants.",
			result.Expected, result.Unit, result.Ingredient), speech.PriorityHigh)
	case domain.ValidationMinor:
		a.say(result.Suggestion, speech.PriorityHigh)
	case domain.ValidationMajor:
		a.sayUrgent(fmt.Sprintf("Careful — the recipe wants %g %s of %s, and the total so far is %g %s.",
			result.Expected, result.Unit, result.Ingredient, result.Actual, result.Unit))
		if result.Suggestion != "" {
			a.say(result.Suggestion, speech.PriorityHigh)
		}
	case domain.ValidationUnitMismatch:
		a.say(fmt.Sprintf("I can't compare what you added in %s against the recipe's %s for %s — check it by eye.",
			result.ActualUnit, result.Unit, result.Ingredient), speech.PriorityHigh)
	}
}

// identify captures a frame and narrates what the vision model sees.
func (a *cliApp) identify(ctx context.Context) {
	if a.analyzer == nil {
		a.say("I don't have eyes right now — vision isn't configured.", speech.PriorityLow)
		return
	}

	framePath, err := a.captureFrame(ctx)
	if err != nil {
		a.say("I couldn't grab a frame from the camera.", speech.PriorityNormal)
		a.log.Warn("frame capture failed: %v", err)
		return
	}

	obs, err := a.analyzer.Analyze(ctx, framePath)
	if err != nil {
		a.say("I couldn't make out what's in frame.", speech.PriorityNormal)
		a.log.Error("vision analysis failed: %v", err)
		return
	}

	var names []string
	for _, item := range obs.Items {
		names = append(names, item.Name)
	}
	for _, tool := range obs.Tools {
		names = append(names, tool.Name)
	}

	if len(names) == 0 {
		a.say("I don't see anything I recognize.", speech.PriorityNormal)
		return
	}

	a.say("I can see: "+strings.Join(names, ", ")+".", speech.PriorityNormal)
}

func (a *cliApp) status(ctx context.Context) {
	if a.sessionID == "" {
		a.say("No active session. Pick a recipe and say 'start'.", speech.PriorityLow)
		return
	}

	session, err := a.engine.Status(ctx, a.sessionID)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	// Visual status dump (not all spoken — too much data).
	a.ui.PrintStep(fmt.Sprintf("Session: %s", session.ID[:8]))
	a.ui.PrintInstruction(fmt.Sprintf("Recipe:  %s", session.RecipeName))
	a.ui.PrintInstruction(fmt.Sprintf("Status:  %s", session.Status))
	a.ui.PrintInstruction(fmt.Sprintf("Step:    %d/%d", session.CurrentStepIndex+1, session.TotalSteps))
	a.ui.PrintHint(fmt.Sprintf("Started: %s ago", time.Since(session.StartedAt).Round(time.Second)))

	for _, add := range session.Added {
		a.ui.PrintHint(fmt.Sprintf("added: %g %s %s (step %d)", add.Amount, add.Unit, add.Ingredient, add.StepIndex+1))
	}
	for _, dev := range session.Deviations {
		a.ui.PrintUrgent(fmt.Sprintf("deviation: %s — %s", dev.Ingredient, dev.Status))
	}

	if summary, err := a.engine.Summarize(ctx, a.sessionID); err == nil {
		a.say(summary.Narrate(), speech.PriorityLow)
	}
}

func (a *cliApp) reset(ctx context.Context) {
	if a.sessionID == "" {
		a.say("Nothing to reset — no active session.", speech.PriorityLow)
		return
	}

	if err := a.engine.Reset(ctx, a.sessionID); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}

	a.say("Okay, back to the beginning. Fresh start.", speech.PriorityNormal)
	a.showCurrentStep(ctx)
}

func (a *cliApp) quit(ctx context.Context) {
	a.say("Happy cooking. Bye!", speech.PriorityNormal)
	// Brief pause so TTS can start the goodbye line.
	time.Sleep(300 * time.Millisecond)
	a.ui.Quit()
}

func (a *cliApp) showHelp() {
	a.ui.PrintStep("Commands:")
	a.ui.PrintInstruction("  list / recipes   Show available recipes")
	a.ui.PrintInstruction("  1, 2, 3...       Select a recipe by number")
	a.ui.PrintInstruction("  start / cook     Start cooking the selected recipe")
	a.ui.PrintInstruction("  next / done      Move to the next step")
	a.ui.PrintInstruction("  back / previous  Go back one step")
	a.ui.PrintInstruction("  repeat / again   Show the current step again")
	a.ui.PrintInstruction("  how much         Check the amount you just measured")
	a.ui.PrintInstruction("  what is this     Identify what's in front of the camera")
	a.ui.PrintInstruction("  status / where   Show session progress and additions")
	a.ui.PrintInstruction("  reset            Restart the session from step one")
	a.ui.PrintInstruction("  help             Show this message")
	a.ui.PrintInstruction("  quit / exit      Exit")
}
