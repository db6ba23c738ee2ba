// cmd/fanconsole/main.go
//
// Terminal host for a single fan module.
// Reads text commands from stdin ("input ..-.", "i -", "help", "status",
// "quit"), plays them into a session and prints the fan target after each
// command. Variants come from the environment (.env honored) and may be
// overridden by flags.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/notthefan/internal/config"
	"github.com/robalobadob/notthefan/internal/game"
	"github.com/robalobadob/notthefan/internal/morse"
	"github.com/robalobadob/notthefan/internal/words"
)

var (
	colorPrompt  = color.Style{color.FgGray}
	colorPending = color.Style{color.FgBlue}
	colorCorrect = color.Style{color.FgGreen, color.OpBold}
	colorStrike  = color.Style{color.FgRed, color.OpBold}
	colorFan     = color.Style{color.FgMagenta}
)

// Delays between symbols when -paced is set.
const (
	shortDelay  = 100 * time.Millisecond
	longDelay   = 200 * time.Millisecond
	symbolDelay = 25 * time.Millisecond
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var (
		seed     uint64
		paced    bool
		reveal   bool
		stages   = cfg.Stages
		finalRow = cfg.FinalRow
		bitOrder = cfg.BitOrder
	)
	flag.Uint64Var(&seed, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.BoolVar(&paced, "paced", false, "delay between symbols like the physical module")
	flag.BoolVar(&reveal, "reveal", false, "print the solution on start")
	flag.IntVar(&stages, "stages", stages, "number of stage words")
	flag.StringVar(&finalRow, "final-row", finalRow, "final row formula (offset, direct)")
	flag.StringVar(&bitOrder, "bit-order", bitOrder, "fourth/fifth fan bit order (low-first, high-first)")
	flag.Parse()

	cfg.Stages, cfg.FinalRow, cfg.BitOrder = stages, finalRow, bitOrder
	gc, err := cfg.Game()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl < zerolog.InfoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	tbl, err := words.Load(cfg.WordsTableFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word table")
	}
	if seed == 0 {
		if seed, err = game.NewSeed(); err != nil {
			log.Fatal().Err(err).Msg("seed")
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable()
	}
	c := &console{out: os.Stdout}
	if paced {
		c.sleep = time.Sleep
	}
	sess, err := game.NewSession(tbl, game.NewRandom(seed), gc, c, game.WithLogger(logger))
	if err != nil {
		log.Fatal().Err(err).Msg("new session")
	}
	c.sess = sess
	if reveal {
		fmt.Fprintln(c.out, colorPrompt.Sprintf("solution: %v", sess.Solution()))
	}
	c.run(os.Stdin)
}

// console plays one session against a line-oriented reader.
type console struct {
	out   io.Writer
	sess  *game.Session
	sleep func(time.Duration) // nil means unpaced

	strikes int
	passed  bool
}

func (c *console) HandleStrike() {
	c.strikes++
	fmt.Fprintln(c.out, colorStrike.Sprintf("STRIKE %d, new words generated", c.strikes))
}

func (c *console) HandlePass() {
	c.passed = true
	fmt.Fprintln(c.out, colorCorrect.Sprint("MODULE SOLVED"))
}

// run reads commands until EOF or "quit".
func (c *console) run(in io.Reader) {
	fmt.Fprintln(c.out, colorPrompt.Sprint(game.HelpMessage))
	c.printState()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(c.out, game.HelpMessage)
			continue
		case "status":
			c.printState()
			continue
		}

		seq, err := game.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(c.out, colorStrike.Sprint("? ")+game.HelpMessage)
			continue
		}
		if c.sess.Solved() {
			fmt.Fprintln(c.out, colorCorrect.Sprint("module already solved"))
			continue
		}
		prefix := c.sess.Buffered()
		if sp := spelled(prefix, seq, c.play(seq)); sp != "" {
			fmt.Fprintln(c.out, "spelled "+colorCorrect.Sprint(sp))
		}
		c.printState()
	}
}

// play submits seq like game.Play, waiting between symbols when paced.
// It stops at a strike or once the module is solved.
func (c *console) play(seq []morse.Symbol) []game.Result {
	out := make([]game.Result, 0, len(seq))
	for _, sym := range seq {
		r := c.sess.Submit(sym)
		out = append(out, r)
		if r == game.Strike || c.sess.Solved() {
			break
		}
		if c.sleep != nil {
			if sym == morse.Long {
				c.sleep(longDelay)
			} else {
				c.sleep(shortDelay)
			}
			c.sleep(symbolDelay)
		}
	}
	return out
}

// spelled decodes the letters completed by seq given its results.
// prefix is the part of the current letter buffered before seq.
func spelled(prefix, seq []morse.Symbol, res []game.Result) string {
	var b strings.Builder
	cur := append([]morse.Symbol(nil), prefix...)
	for i, r := range res {
		cur = append(cur, seq[i])
		switch r {
		case game.Strike:
			return b.String()
		case game.Correct:
			if ch, err := morse.Decode(cur); err == nil {
				b.WriteRune(ch)
			}
			cur = cur[:0]
		}
	}
	return b.String()
}

func (c *console) printState() {
	st := c.sess.State()
	lights := make([]string, len(st.StageLights))
	for i, on := range st.StageLights {
		if on {
			lights[i] = colorCorrect.Sprint("*")
		} else {
			lights[i] = colorPrompt.Sprint("o")
		}
	}
	if st.Solved {
		fmt.Fprintf(c.out, "[%s] solved input %s  %s\n",
			strings.Join(lights, ""), colorPending.Sprint(st.Input), colorFan.Sprint("fan stopped"))
		return
	}
	a := st.Actuator
	fan := fmt.Sprintf("fan %s on=%t pace=%.1f", a.Direction, a.On, a.Pace)
	if a.Stopped {
		fan += " stopped"
	}
	fmt.Fprintf(c.out, "[%s] word %d letter %d input %s  %s\n",
		strings.Join(lights, ""), st.CompletedWords+1, st.CompletedLetters+1,
		colorPending.Sprint(st.Input), colorFan.Sprint(fan))
}
