package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	// Load config.env (the historical name) or .env before subcommands
	// resolve their flag defaults from the environment
	_ = godotenv.Load("config.env")
	_ = godotenv.Load()

	cmd := &cobra.Command{
		Use:   "ocr-kindle",
		Short: "E-reader page capture and OCR pipeline",
		Long: `ocr-kindle drives an e-reader app through its pages, captures each page as
an image, extracts the text with an AI OCR provider, and assembles the result
into a titled text/markdown document synced to a cloud folder.

Capture stops on its own when page turns stop producing new content, and an
interrupted book can be resumed into the same session folder later.`,
	}

	cmd.AddCommand(newCaptureCmd())
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}
