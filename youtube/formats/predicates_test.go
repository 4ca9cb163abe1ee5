package formats

import "testing"

func stream(itag int) Stream {
	d, _ := Lookup(itag)
	return Stream{Descriptor: d, URL: "https://example.com/" + d.Ext}
}

func TestExtEquals(t *testing.T) {
	s := stream(18)
	if !extEquals(s, "mp4") {
		t.Fatal("mp4 should match")
	}
	if !extEquals(s, ".MP4") {
		t.Fatal(".MP4 should match")
	}
	if extEquals(s, "webm") {
		t.Fatal("webm should not match mp4")
	}
	if !extEquals(s, "") {
		t.Fatal("empty ext should not filter")
	}
}

func TestItagEquals(t *testing.T) {
	if !itagEquals(stream(22), 22) {
		t.Fatal("22 should match")
	}
	if itagEquals(Stream{}, 0) {
		t.Fatal("zero itag never matches")
	}
}

func TestWithinHeight(t *testing.T) {
	s := stream(136)
	if !withinHeight(s, 0, 0) {
		t.Fatal("no bounds should pass")
	}
	if !withinHeight(s, 480, 1080) {
		t.Fatal("720p should be within 480..1080")
	}
	if withinHeight(s, 1080, 0) {
		t.Fatal("720p should not be >=1080")
	}
	if withinHeight(s, 0, 360) {
		t.Fatal("720p should not be <=360")
	}
}

func TestBetterByQuality(t *testing.T) {
	if !betterByQuality(stream(137), stream(136)) {
		t.Fatal("1080p should be better than 720p")
	}
	if !betterByQuality(stream(298), stream(136)) {
		t.Fatal("720p60 should be better than 720p30")
	}
	if !betterByQuality(stream(141), stream(140)) {
		t.Fatal("higher audio bitrate should be better at same height")
	}
}
