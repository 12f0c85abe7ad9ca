package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tgstore/adminctl"
)

var (
	uploadImagePath string
	uploadVideoPath string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <product-id>",
	Short: "Upload product media (image and/or video)",
	Long: `Upload attaches an image and/or a video to a saved product.

Transfers run strictly in order: the image first, then the video. If the
image upload fails the video is not attempted and the save must be
re-triggered.

Examples:
  adminctl upload 42 --image ./photo.jpg
  adminctl upload 42 --image ./photo.jpg --video ./demo.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadImagePath, "image", "", "Path to the product image")
	uploadCmd.Flags().StringVar(&uploadVideoPath, "video", "", "Path to the product video")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, args []string) error {
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	if uploadImagePath == "" && uploadVideoPath == "" {
		return errors.New("nothing to upload: pass --image and/or --video")
	}

	var (
		job   adminctl.Job
		total int64
		files int
	)
	if uploadImagePath != "" {
		m, closeFn, err := openMedia(uploadImagePath)
		if err != nil {
			return err
		}
		defer closeFn()
		job.Image = m
		total += max(m.Size, 0)
		files++
	}
	if uploadVideoPath != "" {
		m, closeFn, err := openMedia(uploadVideoPath)
		if err != nil {
			return err
		}
		defer closeFn()
		job.Video = m
		total += max(m.Size, 0)
		files++
	}

	client, err := newClient(newUploadSink())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	if err := client.UploadMedia(ctx, productID, job); err != nil {
		return err
	}

	fmt.Printf("Uploaded %d file(s), %s, to product %d in %s\n",
		files, humanize.Bytes(uint64(total)), productID,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// openMedia opens a local file as an upload candidate. The size falls back
// to unknown when the file cannot be stat'd.
func openMedia(path string) (*adminctl.Media, func(), error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is a user-provided CLI argument
	if err != nil {
		return nil, nil, err
	}
	size := int64(-1)
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	m := &adminctl.Media{
		Name: filepath.Base(path),
		Size: size,
		Body: f,
	}
	return m, func() { _ = f.Close() }, nil
}
