package chat2html_test

import (
	"context"
	"fmt"
	"strings"

	chat2html "github.com/alnah/go-chat2html"
)

const examplePage = `<!DOCTYPE html>
<html>
<head><title>Weekend plans</title></head>
<body>
<main>
<div data-message-author-role="user"><p>Any ideas for Saturday?</p></div>
<div data-message-author-role="assistant"><p>A day trip to the coast.</p></div>
</main>
</body>
</html>`

// Example demonstrates converting a saved conversation page.
func Example() {
	svc := chat2html.New()

	res := svc.Convert(context.Background(), chat2html.Input{HTML: examplePage})
	if !res.Success {
		fmt.Println("error:", res.Err)
		return
	}

	if strings.Contains(string(res.Artifact.Bytes), "day trip to the coast") {
		fmt.Println("document generated")
	}
	fmt.Println("turns:", res.Stats.Turns)
	// Output:
	// document generated
	// turns: 2
}

// Example_withMarkdown demonstrates emitting a Markdown artifact alongside
// the HTML document.
func Example_withMarkdown() {
	svc := chat2html.New()

	res := svc.Convert(context.Background(), chat2html.Input{
		HTML:     examplePage,
		Markdown: true,
	})
	if !res.Success {
		fmt.Println("error:", res.Err)
		return
	}

	if strings.Contains(string(res.Markdown.Bytes), "## Assistant") {
		fmt.Println("markdown generated")
	}
	// Output: markdown generated
}

// Example_withProgress demonstrates observing batch progress during a run.
func Example_withProgress() {
	svc := chat2html.New()

	res := svc.Convert(context.Background(), chat2html.Input{
		HTML:      examplePage,
		BatchSize: 1,
		OnProgress: func(processed, total int) {
			fmt.Printf("processed %d/%d\n", processed, total)
		},
	})
	if !res.Success {
		fmt.Println("error:", res.Err)
	}
	// Output:
	// processed 1/2
	// processed 2/2
}

// Example_withoutImages demonstrates disabling image embedding.
func Example_withoutImages() {
	svc := chat2html.New()

	page := strings.Replace(examplePage,
		"<p>A day trip to the coast.</p>",
		`<p>Here:</p><img src="map.png" alt="map" width="400" height="300">`, 1)

	res := svc.Convert(context.Background(), chat2html.Input{
		HTML:    page,
		Quality: chat2html.QualityNone,
	})
	if !res.Success {
		fmt.Println("error:", res.Err)
		return
	}

	if strings.Contains(string(res.Artifact.Bytes), "[image omitted]") {
		fmt.Println("images omitted")
	}
	// Output: images omitted
}
