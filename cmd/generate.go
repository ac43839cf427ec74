package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/ghostwriter/internal/archive"
	"github.com/lehigh-university-libraries/ghostwriter/internal/codec"
	"github.com/lehigh-university-libraries/ghostwriter/internal/images"
	"github.com/lehigh-university-libraries/ghostwriter/internal/letters"
	"github.com/lehigh-university-libraries/ghostwriter/internal/ocr"
	"github.com/lehigh-university-libraries/ghostwriter/internal/retrieval"
	"github.com/lehigh-university-libraries/ghostwriter/internal/samples"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// minLearnLength keeps degenerate drafts out of the archive.
const minLearnLength = 10

// letterOutput is the yaml shape printed with --output yaml.
type letterOutput struct {
	Letter            string `yaml:"letter"`
	AnonymizedPreview string `yaml:"anonymized_preview,omitempty"`
	MapCount          *int   `yaml:"map_count,omitempty"`
}

func newGenerateCmd() *cobra.Command {
	var (
		textSamples []string
		sampleFiles []string
		imagePaths  []string
		imageURLs   []string
		archivePath string
		retrieveK   int
		learn       bool
		runOCR      bool
		ocrEngine   string
		ocrLangs    []string
		prompt      string
		apiKey      string
		mock        bool
		serverURL   string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a letter in your style from writing samples",
		Long: `Collects writing samples, optionally transcribes photographed letters with
local OCR, and submits everything to a Ghostwriter server for drafting.

With --mock (or no API key) the server skips the model call and returns a
deterministic draft, so you can exercise the full pipeline without billing.`,
		Example: `  # Draft from two text samples
  ghostwriter generate --sample "Dear Maria, ..." --sample-file letter.txt \
    --prompt "a thank you note to my landlord"

  # Transcribe photographed letters locally before submitting
  ghostwriter generate --image scan1.jpg --image scan2.jpg --ocr \
    --prompt "a cover letter for a library position"

  # Draw the most relevant archived samples and remember the draft
  ghostwriter generate --archive samples.parquet --learn \
    --prompt "a letter to the editor about the new bike lanes"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			agg := samples.New()
			for _, text := range textSamples {
				id := agg.AddText()
				agg.UpdateText(id, text)
			}
			for _, path := range sampleFiles {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read sample file %s: %w", path, err)
				}
				id := agg.AddText()
				agg.UpdateText(id, string(data))
			}
			if archivePath != "" {
				records, err := archive.Load(archivePath)
				if err != nil {
					return fmt.Errorf("failed to load sample archive: %w", err)
				}
				selected := addArchiveSamples(agg, records, prompt, retrieveK)
				slog.Info("Loaded archived samples", "archive", archivePath, "selected", selected, "total", len(records))
			}

			payloads := codec.EncodeAll(imagePaths)
			if len(imageURLs) > 0 {
				fetcher := images.NewFetcher()
				for _, url := range imageURLs {
					data, err := fetcher.Fetch(ctx, url)
					if err != nil {
						slog.Warn("Skipping remote image", "url", url, "err", err)
						continue
					}
					payload, err := codec.EncodeBytes(url, data)
					if err != nil {
						slog.Warn("Skipping remote image", "url", url, "err", err)
						continue
					}
					payloads = append(payloads, payload)
				}
			}

			if runOCR && len(payloads) > 0 {
				if err := transcribe(cmd, agg, payloads, ocrEngine, ocrLangs); err != nil {
					return err
				}
			}

			for _, payload := range payloads {
				agg.AddImage(payload.DataURI)
			}

			cred := samples.APIKey(apiKey)
			if mock {
				cred = samples.MockCredential()
			}

			request, err := agg.BuildRequest(prompt, cred)
			if err != nil {
				return err
			}

			client := letters.NewClient(serverURL)
			slog.Info("Submitting generation request",
				"samples", len(request.Samples),
				"images", len(request.SampleImages),
				"server", serverURL)
			result, err := client.Submit(ctx, request)
			if err != nil {
				var netErr *letters.NetworkError
				if errors.As(err, &netErr) {
					slog.Error("Could not reach server", "server", serverURL, "err", netErr.Unwrap())
				}
				return err
			}

			if result.MapCount != nil {
				slog.Debug("Anonymization applied", "substitutions", *result.MapCount)
			}

			// Feed the draft back into the corpus so future runs remember it.
			if learn && archivePath != "" && len(strings.TrimSpace(result.Letter)) >= minLearnLength {
				if err := archive.Append(archivePath, archive.NewRecord("generated", result.Letter)); err != nil {
					slog.Warn("Could not save draft to archive", "archive", archivePath, "err", err)
				}
			}

			switch output {
			case "yaml":
				out, err := yaml.Marshal(letterOutput{
					Letter:            result.Letter,
					AnonymizedPreview: result.AnonymizedPreview,
					MapCount:          result.MapCount,
				})
				if err != nil {
					return fmt.Errorf("failed to marshal output: %w", err)
				}
				cmd.Print(string(out))
			default:
				cmd.Println(result.Letter)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&textSamples, "sample", "s", nil, "Writing sample text (repeatable)")
	cmd.Flags().StringArrayVarP(&sampleFiles, "sample-file", "f", nil, "Path to a writing sample text file (repeatable)")
	cmd.Flags().StringArrayVarP(&imagePaths, "image", "i", nil, "Path to a photographed letter (repeatable)")
	cmd.Flags().StringArrayVar(&imageURLs, "image-url", nil, "URL of a photographed letter (repeatable)")
	cmd.Flags().StringVar(&archivePath, "archive", "", "Sample archive (.parquet or .jsonl) to draw samples from")
	cmd.Flags().IntVar(&retrieveK, "retrieve", 3, "Archived samples most similar to the prompt to include (0 = all)")
	cmd.Flags().BoolVar(&learn, "learn", false, "Append the generated letter back into the archive")
	cmd.Flags().BoolVar(&runOCR, "ocr", false, "Transcribe images locally and include the text as a sample")
	cmd.Flags().StringVar(&ocrEngine, "ocr-engine", "", "OCR engine: tesseract or vision (default from GHOSTWRITER_OCR_ENGINE)")
	cmd.Flags().StringSliceVar(&ocrLangs, "ocr-language", []string{"eng"}, "OCR language hints")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "What the letter should be about (required)")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", os.Getenv("GHOSTWRITER_API_KEY"), "API key for the model provider")
	cmd.Flags().BoolVar(&mock, "mock", false, "Skip the model call and return a deterministic draft")
	cmd.Flags().StringVar(&serverURL, "server", letters.DefaultBaseURL(), "Ghostwriter server base URL")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")

	return cmd
}

// addArchiveSamples feeds archived records into the aggregator and reports
// how many were selected. When k is in (0, len) only the records most
// similar to the prompt are included; otherwise the whole archive is.
func addArchiveSamples(agg *samples.Aggregator, records []archive.Record, prompt string, k int) int {
	if k > 0 && k < len(records) {
		records = retrieval.NewIndex(records).TopK(prompt, k)
	}
	for _, record := range records {
		id := agg.AddText()
		agg.UpdateText(id, record.Text)
	}
	return len(records)
}

// transcribe runs one recognition session per image against a shared buffer
// and adds the combined transcript as a text sample. Failed images are
// logged and skipped; the submission proceeds with whatever was recognized.
func transcribe(cmd *cobra.Command, agg *samples.Aggregator, payloads []*codec.Payload, engineName string, langs []string) error {
	engine, err := ocr.NewEngine(engineName)
	if err != nil {
		return err
	}

	buffer := ocr.NewBuffer()
	for _, payload := range payloads {
		session := ocr.NewSession(engine, buffer, ocr.Input{
			ID:        payload.Source,
			Image:     payload.Bytes,
			MIMEType:  payload.MIMEType,
			Languages: langs,
		})
		session.Start(cmd.Context())
		for event := range session.Events() {
			if event.Terminal {
				if event.Err != nil {
					slog.Warn("Recognition failed", "source", payload.Source, "err", event.Err)
				} else {
					slog.Info("Recognized image", "source", payload.Source, "chars", len(event.Text))
				}
				break
			}
			slog.Debug("Recognition progress", "source", payload.Source, "percent", event.Progress)
		}
	}

	if !buffer.Empty() {
		id := agg.AddText()
		agg.UpdateText(id, buffer.String())
	}
	return nil
}
