package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/mockup"
	"mockupstudio/internal/providers/image"
	"mockupstudio/internal/upload"
)

const sessionHelp = `commands:
  generate            start four new mockups with the current settings
  status              show every card of the current batch
  wait                block until no card is generating
  redo <n>            regenerate card n (1-4)
  save [dir]          save ready mockups
  image <path|data:>  load new artwork from a file or a pasted data URI
                      (clears current results)
  category <name>     choose the product category
  describe [text]     set or clear the styling hint
  categories          list product categories
  clear               discard current results
  quit                leave the session
`

const pastedImageName = "pasted-image"

func init() {
	sessionCmd.Flags().StringP(flagImage, "i", "", "Path to the logo or artwork (PNG or JPEG)")
	sessionCmd.Flags().StringP(flagCategory, "c", string(domain.CategoryTShirt), "Product category")
	sessionCmd.Flags().StringP(flagDescription, "d", "", "Optional styling hint")
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Interactive session with live cards, redo and save",
	RunE: func(cmd *cobra.Command, _ []string) error {
		imagePath, _ := cmd.Flags().GetString(flagImage)
		categoryName, _ := cmd.Flags().GetString(flagCategory)
		description, _ := cmd.Flags().GetString(flagDescription)

		s := newSession(studio)
		if imagePath != "" {
			if err := s.loadImage(imagePath); err != nil {
				return err
			}
		}
		if err := s.setCategory(categoryName); err != nil {
			return err
		}
		s.description = strings.TrimSpace(description)

		return s.run(cmd.Context(), cmd.InOrStdin())
	},
}

// session holds the user's pending selection; a batch freezes a copy of it.
type session struct {
	app         *app
	source      image.SourceImage
	category    domain.Category
	description string
	handle      *mockup.Handle
}

func newSession(a *app) *session {
	return &session{app: a, category: domain.CategoryTShirt}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	s.app.printer.printf("%s", sessionHelp)
	scanner := bufio.NewScanner(in)
	for {
		s.app.printer.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.exec(ctx, scanner.Text())
		if err != nil {
			s.app.printer.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *session) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.app.printer.printf("%s", sessionHelp)
	case "categories":
		for i, c := range domain.Categories() {
			s.app.printer.printf("%2d. %s\n", i+1, c)
		}
	case "image":
		return false, s.loadImage(arg)
	case "category":
		return false, s.setCategory(arg)
	case "describe":
		s.description = arg
	case "generate", "g":
		return false, s.generate(ctx)
	case "status":
		return false, s.status()
	case "wait":
		return false, s.wait(ctx)
	case "redo":
		return false, s.redo(ctx, arg)
	case "save":
		return false, s.save(ctx, arg)
	case "clear":
		s.app.manager.Clear()
		s.handle = nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return false, nil
}

func (s *session) loadImage(path string) error {
	if path == "" {
		return errors.New("image path required")
	}
	var (
		src image.SourceImage
		err error
	)
	if strings.HasPrefix(path, "data:") {
		src, err = upload.FromDataURL(pastedImageName, path, s.app.cfg.MaxUploadBytes)
	} else {
		src, err = upload.LoadFile(path, s.app.cfg.MaxUploadBytes)
	}
	if err != nil {
		return err
	}
	s.source = src
	s.app.manager.Clear()
	s.handle = nil
	s.app.printer.printf("image ready: %s (%s, %d bytes)\n", src.Filename, src.MIME, len(src.Data))
	return nil
}

func (s *session) setCategory(name string) error {
	c, err := domain.ParseCategory(name)
	if err != nil {
		return err
	}
	s.category = c
	return nil
}

func (s *session) generate(ctx context.Context) error {
	if s.source.Empty() {
		return errors.New("load an image first (image <path>)")
	}
	if s.app.manager.Generating() {
		return errors.New("still generating, wait for the current batch")
	}
	h, err := s.app.manager.StartBatch(ctx, mockup.Input{
		Source:      s.source,
		Category:    s.category,
		Description: s.description,
	})
	if err != nil {
		return err
	}
	s.handle = h
	return nil
}

func (s *session) current() (*mockup.Handle, mockup.Batch, error) {
	if s.handle == nil {
		return nil, mockup.Batch{}, errors.New("no mockups yet (generate first)")
	}
	b, ok := s.handle.Batch()
	if !ok {
		s.handle = nil
		return nil, mockup.Batch{}, errors.New("no mockups yet (generate first)")
	}
	return s.handle, b, nil
}

func (s *session) status() error {
	_, b, err := s.current()
	if err != nil {
		return err
	}
	s.app.printer.batch(b)
	return nil
}

func (s *session) wait(ctx context.Context) error {
	h, _, err := s.current()
	if err != nil {
		return err
	}
	b, err := h.WaitSettled(ctx)
	if err != nil {
		return err
	}
	s.app.printer.batch(b)
	return nil
}

func (s *session) redo(ctx context.Context, arg string) error {
	h, b, err := s.current()
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(b.Jobs) {
		return fmt.Errorf("redo expects a card number between 1 and %d", len(b.Jobs))
	}
	job := b.Jobs[n-1]
	if err := s.app.manager.RedoJob(ctx, h.ID(), job.ID); err != nil {
		if errors.Is(err, domain.ErrJobPending) {
			return fmt.Errorf("card %d is still generating", n)
		}
		return err
	}
	return nil
}

func (s *session) save(ctx context.Context, dir string) error {
	_, b, err := s.current()
	if err != nil {
		return err
	}
	if dir == "" {
		dir = s.app.cfg.OutputDir
	}
	paths, err := saveResults(ctx, dir, b, false, time.Now())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no ready mockups to save")
	}
	for _, p := range paths {
		s.app.printer.printf("saved %s\n", p)
	}
	return nil
}
