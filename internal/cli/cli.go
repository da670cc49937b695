// Package cli is the terminal front end: one CPF per line in, a table or
// the not-found message out.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sakif/roster-lookup/internal/apperror"
	"github.com/sakif/roster-lookup/internal/model"
)

// Lookuper is the part of service.LookupService the prompt needs.
type Lookuper interface {
	Lookup(ctx context.Context, query string) ([]model.CandidateView, error)
}

var quitWords = map[string]bool{"sair": true, "exit": true, "quit": true}

// Prompt reads queries from in and writes results to out.
type Prompt struct {
	lookup Lookuper
	in     io.Reader
	out    io.Writer
}

func NewPrompt(lookup Lookuper, in io.Reader, out io.Writer) *Prompt {
	return &Prompt{lookup: lookup, in: in, out: out}
}

// Run loops until EOF, a quit word, or ctx is cancelled. Each line is one
// input event; blank lines are ignored without querying.
//
// Cancellation is a normal exit: Ctrl+C at the prompt ends the session
// even while no input is pending.
func (p *Prompt) Run(ctx context.Context) error {
	color.New(color.FgCyan).Fprintln(p.out, "\n=== Busca do candidato por CPF ===")
	fmt.Fprintln(p.out, "Digite o CPF sem pontos ou traços. \"sair\" encerra.")

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := p.readLines(readCtx)

loop:
	for {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprint(p.out, "\nCPF (somente números): ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			break loop
		case raw, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("cli: reading input: %w", err)
				}
				break loop
			}

			line := strings.TrimSpace(raw)
			if quitWords[strings.ToLower(line)] {
				break loop
			}
			if line == "" {
				continue
			}

			p.Handle(ctx, line)
		}
	}

	color.New(color.FgGreen).Fprintln(p.out, "\nAté logo!")
	return nil
}

// readLines scans p.in on its own goroutine so Run can wait on ctx and
// input at the same time. readErr receives the scanner's error (nil at EOF)
// before lines is closed. Cancelling ctx releases a goroutine waiting to
// hand over a line. A goroutine blocked in Scan stays there until the
// reader returns, which for stdin means process exit.
func (p *Prompt) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

// Handle runs one lookup and renders its outcome.
func (p *Prompt) Handle(ctx context.Context, query string) {
	views, err := p.lookup.Lookup(ctx, query)
	switch {
	case err == nil:
		color.New(color.FgYellow).Fprintln(p.out, "\nInformações do aluno:")
		RenderTable(p.out, views)
	case errors.Is(err, apperror.ErrNotFound):
		color.New(color.FgRed).Fprintln(p.out, err.Error())
	default:
		color.New(color.FgRed).Fprintf(p.out, "Erro ao buscar candidato: %v\n", err)
	}
}

// RenderTable writes views as a bordered table with the roster column names.
func RenderTable(w io.Writer, views []model.CandidateView) {
	table := tablewriter.NewWriter(w)
	// Keep NOME_CANDIDATO as written; auto formatting would turn "_" into spaces.
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(model.ColumnHeaders)

	for _, v := range views {
		table.Append(v.Row())
	}

	table.Render()
}
