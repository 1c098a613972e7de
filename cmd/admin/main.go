// Package main is an interactive terminal client for managing tours.
// It drives the same repo, storage, and service wiring as the API server,
// with an admin.Session owning the list/edit state and a form.TourForm
// owning each draft. Useful for operating on an environment without the
// web frontend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/travelworld/tour-admin/internal/admin"
	"github.com/travelworld/tour-admin/internal/config"
	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/form"
	"github.com/travelworld/tour-admin/internal/repo"
	"github.com/travelworld/tour-admin/internal/service"
	"github.com/travelworld/tour-admin/internal/storage"
)

// printNotifier writes session notifications to the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println("ok:", msg) }
func (printNotifier) Error(msg string)   { fmt.Println("error:", msg) }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database error:", err)
		os.Exit(1)
	}
	defer pool.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "object store config error:", err)
		os.Exit(1)
	}

	images := storage.NewImageStore(s3.NewFromConfig(awsCfg), cfg.ImageBucket)
	svc := service.NewTourService(repo.NewTourRepo(pool), images)
	session := admin.NewSession(svc, printNotifier{})

	cli := &client{session: session, in: bufio.NewReader(os.Stdin)}
	cli.run(ctx)
}

// client is the terminal read-eval loop around an admin.Session.
type client struct {
	session *admin.Session
	in      *bufio.Reader
}

func (c *client) run(ctx context.Context) {
	c.session.Refresh(ctx)
	c.printList()

	for {
		fmt.Print("tour-admin> ")
		line, err := c.in.ReadString('\n')
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

		switch cmd {
		case "list":
			c.session.Refresh(ctx)
			c.printList()
		case "new":
			c.submitForm(ctx, form.New())
		case "edit":
			tour, ok := c.tourAt(arg)
			if !ok {
				continue
			}
			c.session.BeginEdit(tour)
			if draft, editing := c.session.Editing(); editing {
				c.submitForm(ctx, form.Edit(draft))
			}
		case "rm":
			tour, ok := c.tourAt(arg)
			if !ok {
				continue
			}
			c.session.Remove(ctx, tour.ID)
		case "quit", "exit":
			return
		case "":
		default:
			fmt.Println("commands: list | new | edit <n> | rm <n> | quit")
		}
	}
}

// printList renders the session's current tour list, newest first.
func (c *client) printList() {
	tours := c.session.Tours()
	if len(tours) == 0 {
		fmt.Println("no tours")
		return
	}
	for i, t := range tours {
		desc := t.Description
		if len(desc) > 40 {
			desc = desc[:40] + "…"
		}
		fmt.Printf("%2d. %-30s %8.2f  %s → %s  %s\n",
			i+1, t.Title, t.Price,
			t.StartDate.Format(time.DateOnly), t.EndDate.Format(time.DateOnly),
			desc)
	}
}

// tourAt resolves a 1-based list index argument into a tour.
func (c *client) tourAt(arg string) (domain.Tour, bool) {
	n, err := strconv.Atoi(arg)
	tours := c.session.Tours()
	if err != nil || n < 1 || n > len(tours) {
		fmt.Println("usage: edit <n> | rm <n>  (n from the list)")
		return domain.Tour{}, false
	}
	return tours[n-1], true
}

// submitForm prompts for every field, attaches an optional image, and hands
// the draft to the session. Validation failures are printed per field and
// abort the submission; the session is left unchanged.
func (c *client) submitForm(ctx context.Context, f *form.TourForm) {
	f.Title = c.prompt("title", f.Title)
	f.Description = c.prompt("description", f.Description)

	if v := c.prompt("price", formatPrice(f.Price)); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			f.Price = &price
		}
	}
	f.StartDate = c.promptDate("start date", f.StartDate)
	f.EndDate = c.promptDate("end date", f.EndDate)

	if path := c.prompt("image file (optional)", ""); path != "" {
		if err := c.attach(f, path); err != nil {
			fmt.Println("error:", err)
			c.session.CancelEdit()
			return
		}
	}

	err := f.Submit(func(draft domain.Tour, file *storage.ImageFile) error {
		c.session.Submit(ctx, draft, file)
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
		c.session.CancelEdit()
		return
	}
	c.printList()
}

// attach opens the file at path and places it in the form's attachment slot.
// The content type is derived from the extension; the form's policy check
// rejects anything that is not a small JPEG or PNG.
func (c *client) attach(f *form.TourForm, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	err = f.Attach(storage.ImageFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Body:        file,
	})
	if err != nil {
		file.Close()
		return err
	}
	return nil
}

// prompt reads one line, falling back to current when the input is blank.
func (c *client) prompt(label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		return current
	}
	if v := strings.TrimSpace(line); v != "" {
		return v
	}
	return current
}

// promptDate reads a YYYY-MM-DD value, keeping the current one on blank or
// unparsable input.
func (c *client) promptDate(label string, current time.Time) time.Time {
	cur := ""
	if !current.IsZero() {
		cur = current.Format(time.DateOnly)
	}
	v := c.prompt(label, cur)
	if v == "" {
		return current
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		fmt.Println("expected date as YYYY-MM-DD")
		return current
	}
	return d
}

// formatPrice renders the current price for the prompt default.
func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
