package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"

	"github.com/nao1215/hoyoauth/internal/auth"
	"github.com/nao1215/hoyoauth/internal/model"
)

// errNotInteractive is returned for one-time codes when stdin is not a terminal.
var errNotInteractive = errors.New("a one-time code is required but stdin is not a terminal")

// terminalSolver answers challenges by asking on the terminal. Prompts from
// concurrent logins are serialised.
type terminalSolver struct {
	out         io.Writer
	lines       <-chan string
	interactive bool
	mu          sync.Mutex
	prompt      *color.Color
}

var (
	_ auth.Solver      = (*terminalSolver)(nil)
	_ auth.OTPProvider = (*terminalSolver)(nil)
	_ auth.QRPresenter = (*terminalSolver)(nil)
)

// newTerminalSolver reads answers from in and writes prompts to out.
func newTerminalSolver(in io.Reader, out io.Writer, interactive bool) *terminalSolver {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return &terminalSolver{
		out:         out,
		lines:       lines,
		interactive: interactive,
		prompt:      color.New(color.FgYellow, color.Bold),
	}
}

// newStdioSolver prompts on stderr when stdin is a terminal.
func newStdioSolver() *terminalSolver {
	fd := os.Stdin.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return newTerminalSolver(os.Stdin, os.Stderr, interactive)
}

func (s *terminalSolver) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(line), nil
	}
}

// SolveCaptcha prints the Geetest parameters and reads the solved result
// as one line of JSON.
func (s *terminalSolver) SolveCaptcha(ctx context.Context, ch *model.Challenge) (*model.ChallengeProof, error) {
	if !s.interactive {
		return nil, auth.ErrSolverNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	mmt := ch.MMT
	s.prompt.Fprintln(s.out, "The server asks for a Geetest captcha.")
	if mmt.IsV4() {
		fmt.Fprintf(s.out, "  captcha_id: %s\n  risk_type:  %s\n", mmt.CaptchaID, mmt.RiskType)
		fmt.Fprintln(s.out, `Solve it and paste {"lot_number":...,"pass_token":...,"gen_time":...,"captcha_output":...}:`)
	} else {
		fmt.Fprintf(s.out, "  gt:        %s\n  challenge: %s\n", mmt.GT, mmt.Challenge)
		fmt.Fprintln(s.out, `Solve it and paste {"geetest_challenge":...,"geetest_validate":...,"geetest_seccode":...}:`)
	}

	line, err := s.readLine(ctx)
	if err != nil {
		return nil, err
	}
	return parseCaptchaAnswer(mmt, line)
}

// parseCaptchaAnswer builds a proof from a pasted Geetest result.
func parseCaptchaAnswer(mmt model.SessionMMT, line string) (*model.ChallengeProof, error) {
	if !gjson.Valid(line) {
		return nil, fmt.Errorf("%w: answer is not JSON", model.ErrInvalidProof)
	}
	r := gjson.Parse(line)
	if mmt.IsV4() {
		if r.Get("lot_number").String() == "" || r.Get("pass_token").String() == "" {
			return nil, fmt.Errorf("%w: lot_number and pass_token are required", model.ErrInvalidProof)
		}
		return model.NewCaptchaV4Proof(model.SessionMMTv4Result{
			CaptchaID:     mmt.CaptchaID,
			LotNumber:     r.Get("lot_number").String(),
			PassToken:     r.Get("pass_token").String(),
			GenTime:       r.Get("gen_time").String(),
			CaptchaOutput: r.Get("captcha_output").String(),
			SessionID:     mmt.SessionID,
		})
	}
	if r.Get("geetest_validate").String() == "" || r.Get("geetest_seccode").String() == "" {
		return nil, fmt.Errorf("%w: geetest_validate and geetest_seccode are required", model.ErrInvalidProof)
	}
	challenge := r.Get("geetest_challenge").String()
	if challenge == "" {
		challenge = mmt.Challenge
	}
	return model.NewCaptchaProof(model.SessionMMTResult{
		GeetestChallenge: challenge,
		GeetestValidate:  r.Get("geetest_validate").String(),
		GeetestSeccode:   r.Get("geetest_seccode").String(),
		SessionID:        mmt.SessionID,
	})
}

// OTP implements auth.OTPProvider.
func (s *terminalSolver) OTP(ctx context.Context, purpose auth.OTPPurpose) (string, error) {
	if !s.interactive {
		return "", errNotInteractive
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch purpose {
	case auth.OTPSMS:
		s.prompt.Fprint(s.out, "Enter the code sent by SMS: ")
	default:
		s.prompt.Fprint(s.out, "Enter the code sent to your email: ")
	}
	code, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("empty %s code", purpose)
	}
	return code, nil
}

// PresentQRCode implements auth.QRPresenter.
func (s *terminalSolver) PresentQRCode(_ context.Context, qr model.QRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompt.Fprintln(s.out, "Open this URL as a QR code and scan it with the miyoushe app:")
	fmt.Fprintf(s.out, "  %s\n", qr.URL)
	fmt.Fprintln(s.out, "Waiting for confirmation...")
	return nil
}
