// Package browser забирает разметку и скриншоты живых страниц через
// Playwright (headless Firefox). Используется командами selectors-url и imgdiff-url.
package browser

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Config struct {
	Headless        bool
	Display         string
	BrowsersPath    string
	NavigateTimeout time.Duration
}

type Fetcher struct {
	cfg Config

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func New(cfg Config) *Fetcher {
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second
	}
	return &Fetcher{cfg: cfg}
}

// ensureStarted лениво поднимает Playwright и браузер при первом обращении.
func (f *Fetcher) ensureStarted() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return nil
	}

	if f.cfg.BrowsersPath != "" {
		os.Setenv("PLAYWRIGHT_BROWSERS_PATH", f.cfg.BrowsersPath)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("запуск playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(f.cfg.Headless),
		Args:     []string{"--no-sandbox"},
	}
	if f.cfg.Display != "" {
		opts.Env = map[string]string{"DISPLAY": f.cfg.Display}
	}

	browser, err := pw.Firefox.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("запуск браузера: %w", err)
	}

	f.pw = pw
	f.browser = browser
	return nil
}

func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		_ = f.browser.Close()
		f.browser = nil
	}
	if f.pw != nil {
		_ = f.pw.Stop()
		f.pw = nil
	}
}

// FetchHTML открывает страницу и возвращает её итоговую разметку.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	page, err := f.openPage(ctx, url)
	if err != nil {
		return "", err
	}
	defer page.Close()

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("чтение разметки %s: %w", url, err)
	}
	return content, nil
}

// Screenshot открывает страницу и возвращает полноразмерный PNG-скриншот.
func (f *Fetcher) Screenshot(ctx context.Context, url string) ([]byte, error) {
	page, err := f.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	shot, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("скриншот %s: %w", url, err)
	}
	return shot, nil
}

func (f *Fetcher) openPage(ctx context.Context, url string) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.ensureStarted(); err != nil {
		return nil, err
	}

	page, err := f.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("новая страница: %w", err)
	}

	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(f.cfg.NavigateTimeout.Milliseconds())),
	})
	if err != nil {
		page.Close()
		return nil, fmt.Errorf("переход на %s: %w", url, err)
	}
	return page, nil
}
