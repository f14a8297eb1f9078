package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

var flagUploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <path|url>",
	Short: "Upload a PDF and index it",
	Long:  "Upload a local PDF, or let the document API fetch one when given an http(s) URL, then run the worker's full indexing pipeline.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := newLocalWorkspace()
		source := args[0]

		var err error
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			err = ws.UploadURLAndIndex(cmd.Context(), domain.UploadURLRequest{URL: source, Filename: flagUploadName})
		} else {
			content, readErr := os.ReadFile(source)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", source, readErr)
			}
			name := flagUploadName
			if name == "" {
				name = filepath.Base(source)
			}
			contentType := mime.TypeByExtension(filepath.Ext(name))
			ws.StageFile(&domain.StagedFile{Name: name, ContentType: contentType, Content: content})
			err = ws.UploadAndIndex(cmd.Context())
		}

		view := ws.View()
		printStatus(view, domain.ChannelUpload)
		if err != nil {
			return err
		}

		fmt.Printf("  File:       %s\n", view.LastUploaded)
		fmt.Printf("  Processing: %s\n", view.ProcessingInfo)
		fmt.Printf("  Language:   %s\n", view.LanguageInfo)
		if view.Processing != nil && len(view.Processing.SectionPatterns) > 0 {
			fmt.Println("  Section patterns:")
			for _, p := range view.Processing.SectionPatterns {
				fmt.Printf("    %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&flagUploadName, "name", "", "file name to submit (default: base name of the path)")
	rootCmd.AddCommand(uploadCmd)
}

func printStatus(view domain.WorkspaceView, ch domain.Channel) {
	status := view.Status(ch)
	fmt.Printf("[%s] %s\n", status.Tone, status.Message)
}
