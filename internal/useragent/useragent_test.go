package useragent

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Platform
	}{
		{name: "empty", ua: "", want: Unknown},
		{name: "windows chrome", ua: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", want: Windows},
		{name: "mac safari", ua: "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15", want: MacOS},
		{name: "linux firefox", ua: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", want: Linux},
		{name: "android", ua: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36", want: Android},
		{name: "iphone", ua: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1", want: IOS},
		{name: "ipad", ua: "Mozilla/5.0 (iPad; CPU OS 17_2 like Mac OS X) AppleWebKit/605.1.15", want: IOS},
		{name: "freebsd", ua: "Mozilla/5.0 (X11; FreeBSD amd64; rv:121.0) Gecko/20100101 Firefox/121.0", want: FreeBSD},
		{name: "chromeos", ua: "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36", want: Linux},
		{name: "curl", ua: "curl/8.5.0", want: Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.ua); got != tc.want {
				t.Fatalf("Detect(%q) = %s, want %s", tc.ua, got, tc.want)
			}
		})
	}
}

func TestParsePlatform(t *testing.T) {
	for _, p := range []Platform{Windows, MacOS, Linux, Android, IOS, FreeBSD} {
		got, ok := ParsePlatform(p.String())
		if !ok || got != p {
			t.Fatalf("ParsePlatform(%q) = %s, %v", p.String(), got, ok)
		}
	}
	if got, ok := ParsePlatform(" Darwin "); !ok || got != MacOS {
		t.Fatalf("expected darwin alias to parse as macos, got %s %v", got, ok)
	}
	if _, ok := ParsePlatform("unknown"); ok {
		t.Fatal("expected unknown not to parse")
	}
	if _, ok := ParsePlatform("beos"); ok {
		t.Fatal("expected beos not to parse")
	}
	if Platform(42).String() != "unknown" {
		t.Fatalf("unexpected name for out-of-range platform: %s", Platform(42))
	}
}
