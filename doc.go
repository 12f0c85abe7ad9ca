// Package adminctl uploads product media to the e-commerce Telegram-bot
// storefront's admin API.
//
// A save operation attaches at most two files to a product: a primary image
// and a secondary video. Transfers run strictly in order; the video is only
// attempted once the image succeeded or was absent, and a job resolves
// exactly once. While a transfer runs, real network metrics feed a transfer
// tracker whose bursty raw values are pulled toward a visually stable
// display by a converging smoother.
//
// # Basic Usage
//
// Create a client and upload media for a product:
//
//	client, err := adminctl.NewClient("https://shop.example.com", token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Open("photo.jpg")
//	defer f.Close()
//	err = client.UploadMedia(ctx, 42, adminctl.Job{
//	    Image: &adminctl.Media{Name: "photo.jpg", Size: size, Body: f},
//	})
//
// # Progress display
//
// Pass a Sink via WithSink to receive smoothed progress updates. The sink
// owns all rendering; adminctl never touches a terminal directly.
//
// # Limitations
//
// In-flight transfers are not cancelable through the job API and there is
// no automatic retry; a failed save must be re-triggered by the caller.
package adminctl
