package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unsaac-bioinfo/genostat/internal/config"
)

// NCBI E-utilities endpoint for fetching GenBank records.
const efetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// defaultAccession is the E. coli K-12 MG1655 reference sequence.
const defaultAccession = "NC_000913.3"

func newDownloadCmd() *cobra.Command {
	var accession string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a GenBank record from NCBI",
		Long: `Download an annotated genome from NCBI E-utilities into the configured
input path. Set NCBI_EMAIL (and optionally NCBI_API_KEY) in the
environment or a .env file to identify your requests.`,
		Example: `  genostat download
  genostat download --accession NC_000913.3
  genostat download --input data/raw/my_genome.gbk --accession NZ_CP009273.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(viper.GetViper())
			return runDownload(cfg, accession)
		},
	}

	cmd.Flags().StringVar(&accession, "accession", defaultAccession, "NCBI nucleotide accession")
	return cmd
}

func runDownload(cfg config.Config, accession string) error {
	dest := cfg.InputFile
	if info, err := os.Stat(dest); err == nil {
		fmt.Printf("%s already exists (%s), skipping\n", dest, formatSize(info.Size()))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create input directory: %w", err)
	}

	q := url.Values{}
	q.Set("db", "nuccore")
	q.Set("id", accession)
	q.Set("rettype", "gbwithparts")
	q.Set("retmode", "text")
	if cfg.NCBIEmail != "" {
		q.Set("email", cfg.NCBIEmail)
	}
	if cfg.NCBIAPIKey != "" {
		q.Set("api_key", cfg.NCBIAPIKey)
	}

	fmt.Printf("Downloading %s from NCBI...\n", accession)
	fmt.Printf("Destination: %s\n", dest)
	if cfg.NCBIEmail == "" {
		fmt.Println("Hint: set NCBI_EMAIL to identify your requests to NCBI")
	}

	if err := downloadFile(efetchURL+"?"+q.Encode(), dest); err != nil {
		return fmt.Errorf("download %s: %w", accession, err)
	}
	if err := checkGenBankHeader(dest); err != nil {
		os.Remove(dest)
		return fmt.Errorf("downloaded %s: %w", accession, err)
	}

	fmt.Printf("\nDownload complete. To analyze, run:\n  genostat run\n")
	return nil
}

// checkGenBankHeader rejects downloads that are not GenBank flat files,
// typically an E-utilities error page.
func checkGenBankHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 5)
	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("not a GenBank record: %w", err)
	}
	if string(buf) != "LOCUS" {
		return fmt.Errorf("not a GenBank record: expected LOCUS header, got %q", string(buf))
	}
	return nil
}

// downloadFile downloads a URL to the destination path with progress.
func downloadFile(srcURL, destPath string) error {
	client := &http.Client{
		Timeout: 30 * time.Minute, // Long timeout for large records
	}

	resp, err := client.Get(srcURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	var downloaded int64
	pw := &progressWriter{
		total:      resp.ContentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Printf("    Done: %s\n", formatSize(downloaded))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	// Print progress every second
	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Printf("\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Printf("\r    Progress: %s  ", formatSize(*pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}

	return n, nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
