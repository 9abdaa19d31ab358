package minio

import "testing"

func TestEndpointURL(t *testing.T) {
	cases := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"localhost:9000", false, "http://localhost:9000"},
		{"minio.internal", true, "https://minio.internal"},
		{"https://s3.example.com/", false, "https://s3.example.com"},
	}
	for _, tc := range cases {
		if got := EndpointURL(tc.endpoint, tc.ssl); got != tc.want {
			t.Fatalf("EndpointURL(%q, %v) = %q, want %q", tc.endpoint, tc.ssl, got, tc.want)
		}
	}
}

func TestObjectURL(t *testing.T) {
	got := ObjectURL("http://localhost:9000/", "movie-events", "movie-events/1/x.json")
	if got != "http://localhost:9000/movie-events/movie-events/1/x.json" {
		t.Fatalf("unexpected url %q", got)
	}
}
