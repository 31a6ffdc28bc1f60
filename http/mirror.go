package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/aptly-dev/pkgstats/pkgstats"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// ContentsFileName returns name of compressed Contents index for architecture
func ContentsFileName(architecture string) string {
	return "Contents-" + architecture + ".gz"
}

// ContentsURL builds URL of Contents index from mirror base
func ContentsURL(mirror string, architecture string) string {
	return mirrorDir(mirror) + ContentsFileName(architecture)
}

// ResolveContentsURL returns URL of Contents index, either built from template
// or looked up on mirror page listing
func ResolveContentsURL(ctx context.Context, downloader pkgstats.Downloader, mirror string, architecture string, static bool) (string, error) {
	if static {
		return ContentsURL(mirror, architecture), nil
	}

	return FindLink(ctx, downloader, mirrorDir(mirror), ContentsFileName(architecture))
}

// FindLink downloads HTML page and returns absolute target of the first link
// which text contains name
func FindLink(ctx context.Context, downloader pkgstats.Downloader, pageURL string, name string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", errors.Wrap(err, "unable to parse mirror URL")
	}

	file, err := DownloadTemp(ctx, downloader, pageURL)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := html.Parse(file)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse %s", pageURL)
	}

	href, found := findAnchor(doc, name)
	if !found {
		return "", &NoCandidateFoundError{Name: name, URL: base}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", errors.Wrapf(err, "bad link %q", href)
	}

	return base.ResolveReference(ref).String(), nil
}

func mirrorDir(mirror string) string {
	return strings.TrimSuffix(mirror, "/") + "/"
}

func findAnchor(n *html.Node, name string) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "a" && strings.Contains(nodeText(n), name) {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				return attr.Val, true
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if href, found := findAnchor(child, name); found {
			return href, true
		}
	}

	return "", false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}

	return sb.String()
}
