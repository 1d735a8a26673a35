package zillowfetcher

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// Публичная выгрузка ZORI (Zillow Observed Rent Index) по почтовым
// индексам.
const DefaultZoriURL = "https://files.zillowstatic.com/research/public_csvs/zori/Zip_zori_uc_sfrcondomfr_sm_month.csv"

const zillowDomain = "files.zillowstatic.com"

// ZillowFetcherAdapter отвечает за скачивание выгрузки индекса аренды.
// Инкапсулирует настроенный colly.Collector.
type ZillowFetcherAdapter struct {
	// Родительский коллектор с общими лимитами; на каждое скачивание
	// делается одноразовый клон со своими обработчиками.
	collector *colly.Collector
	sourceURL string
}

// NewZillowFetcherAdapter создает адаптер для указанного URL выгрузки
// (пустая строка — публичный URL по умолчанию).
func NewZillowFetcherAdapter(sourceURL string) *ZillowFetcherAdapter {
	if sourceURL == "" {
		sourceURL = DefaultZoriURL
	}

	c := colly.NewCollector(colly.AllowedDomains(zillowDomain))

	// Выгрузка скачивается редко и целиком, но лимиты всё равно
	// держим вежливыми: один запрос за раз со случайной задержкой.
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  zillowDomain,
		Parallelism: 1,
		RandomDelay: 2 * time.Second,
	})
	if err != nil {
		log.Fatalf("ZillowFetcherAdapter: Failed to set limit rule: %v", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("ZillowFetcherAdapter: Error during request to %s: Status=%d, Error=%v", r.Request.URL, r.StatusCode, err)
	})
	c.OnRequest(func(r *colly.Request) {
		log.Printf("ZillowFetcherAdapter: Making request to %s", r.URL.String())
	})

	return &ZillowFetcherAdapter{
		collector: c,
		sourceURL: sourceURL,
	}
}

// Download скачивает выгрузку в файл destPath. Существующий файл
// перезаписывается.
func (a *ZillowFetcherAdapter) Download(ctx context.Context, destPath string) error {
	collector := a.collector.Clone()

	var saveErr error
	saved := false

	collector.OnResponse(func(r *colly.Response) {
		if writeErr := os.WriteFile(destPath, r.Body, 0644); writeErr != nil {
			saveErr = fmt.Errorf("failed to write '%s': %w", destPath, writeErr)
			return
		}
		saved = true
		log.Printf("ZillowFetcherAdapter: Saved %d bytes to '%s'\n", len(r.Body), destPath)
	})

	targetURL, err := a.buildURL()
	if err != nil {
		return fmt.Errorf("zillow adapter: failed to build URL: %w", err)
	}

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return fmt.Errorf("zillow adapter: failed to visit URL %s: %w", targetURL, visitErr)
	}
	collector.Wait()

	if saveErr != nil {
		return saveErr
	}
	if !saved {
		return fmt.Errorf("zillow adapter: no response received for %s", targetURL)
	}
	return nil
}

// buildURL добавляет к URL антикэширующий параметр с текущим
// timestamp — выгрузка за ним обновляется раз в месяц.
func (a *ZillowFetcherAdapter) buildURL() (string, error) {
	u, err := url.Parse(a.sourceURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().Unix(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
