package source

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
)

// IMAPCSVFetcher finds the newest newsletter message carrying the
// spreadsheet as a CSV attachment and parses it. The connection is opened
// per fetch; an aggregation run needs the mailbox exactly once.
type IMAPCSVFetcher struct {
	Addr       string // host:port
	Username   string
	Password   string
	Mailbox    string
	SubjectAny []string // substring match, case-insensitive
	MaxAge     time.Duration
}

func (f IMAPCSVFetcher) FetchTable(ctx context.Context) (Table, error) {
	c, err := dialAndLogin(ctx, f.Addr, f.Username, f.Password)
	if err != nil {
		return Table{}, err
	}
	defer logoutAndClose(c)

	if _, err := c.Select(f.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return Table{}, fmt.Errorf("imap select %s: %w", f.Mailbox, err)
	}

	maxAge := f.MaxAge
	if maxAge <= 0 {
		maxAge = 60 * 24 * time.Hour
	}
	criteria := &imap.SearchCriteria{Since: time.Now().Add(-maxAge)}

	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return Table{}, fmt.Errorf("imap uid search: %w", err)
	}
	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return Table{}, errors.New("no recent newsletter messages")
	}

	// Newest first.
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchOptions := &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	}

	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), fetchOptions)
	defer func() { _ = fetchCmd.Close() }()

	for {
		select {
		case <-ctx.Done():
			return Table{}, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return Table{}, fmt.Errorf("imap fetch collect: %w", err)
		}

		subject := ""
		if buf.Envelope != nil {
			subject = buf.Envelope.Subject
		}
		if !subjectMatches(subject, f.SubjectAny) {
			continue
		}

		raw := buf.FindBodySection(bodyAll)
		if raw == nil {
			continue
		}
		csvBytes, err := csvAttachment(raw)
		if err != nil {
			log.Printf("[newsletter] uid=%v subject=%q: %v", buf.UID, subject, err)
			continue
		}
		return TableFromCSV(csvBytes)
	}

	return Table{}, errors.New("no newsletter message with a csv attachment found")
}

func subjectMatches(subject string, any []string) bool {
	if len(any) == 0 {
		return true
	}
	low := strings.ToLower(subject)
	for _, s := range any {
		if strings.Contains(low, strings.ToLower(strings.TrimSpace(s))) {
			return true
		}
	}
	return false
}

// csvAttachment walks the MIME parts of a raw RFC822 message and returns the
// first part that looks like a CSV attachment.
func csvAttachment(raw []byte) ([]byte, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read part: %w", err)
		}

		h, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, _ := h.Filename()
		ctype, _, _ := h.ContentType()
		if !strings.HasSuffix(strings.ToLower(filename), ".csv") && ctype != "text/csv" {
			continue
		}
		return io.ReadAll(part.Body)
	}
	return nil, errors.New("message has no csv attachment")
}

func dialAndLogin(ctx context.Context, addr, username, password string) (*imapclient.Client, error) {
	if addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if username == "" || password == "" {
		return nil, errors.New("imap username/password is required")
	}

	host := addr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		host = addr[:i]
	}
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	// Best-effort close on context cancel.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(username, password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

func logoutAndClose(c *imapclient.Client) {
	if err := c.Logout().Wait(); err != nil {
		log.Printf("[newsletter] imap logout: %v", err)
	}
	_ = c.Close()
}
