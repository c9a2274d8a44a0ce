// mock-oci plays the OCI Notifications side for manual integration runs: it
// can fire canned alarm payloads (including the broken-JSON variant with
// unescaped quotes) at the bridge and issue a subscription-confirmation
// request, recording whether the bridge calls back.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

var payloads = map[string]string{
	"firing": `{
		"type": "OK_TO_FIRING",
		"severity": "CRITICAL",
		"timestamp": "2026-08-23T10:00:00Z",
		"title": "High CPU on web-1",
		"alarmMetaData": [{
			"alarmSummary": "CPU utilization above 90% for 5 minutes",
			"alarmUrl": "https://cloud.oracle.com/monitoring/alarms/ocid1.alarm.oc1..test",
			"dimensions": [{"resourceDisplayName": "web-1", "shape": "VM.Standard.E4.Flex", "region": "eu-frankfurt-1"}],
			"metricValues": [{"CpuUtilization": "95.512"}]
		}]
	}`,
	"resolved": `{"type": "FIRING_TO_OK", "severity": "CRITICAL", "timestamp": "2026-08-23T10:15:00Z"}`,
	// Reproduces the upstream bug: literal quotes inside alarmSummary.
	"broken": `{"type": "OK_TO_FIRING", "alarmMetaData": [{"alarmSummary": "VM "web-1" is unresponsive, check "console" output"}]}`,
}

// ConfirmationLog records callbacks to the confirmation endpoint
type ConfirmationLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *ConfirmationLog) Add(ua string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, ua)
}

func (l *ConfirmationLog) GetAll() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

var confirmations = &ConfirmationLog{}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9300"
	}
	bridgeURL := os.Getenv("BRIDGE_URL")
	if bridgeURL == "" {
		bridgeURL = "http://localhost:9090"
	}
	selfURL := os.Getenv("SELF_URL")
	if selfURL == "" {
		selfURL = "http://localhost:" + port
	}

	client := &http.Client{Timeout: 10 * time.Second}

	// POST /fire?kind=firing|resolved|broken delivers a canned alarm payload.
	http.HandleFunc("/fire", func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get("kind")
		if kind == "" {
			kind = "firing"
		}
		payload, ok := payloads[kind]
		if !ok {
			http.Error(w, "unknown payload kind", http.StatusBadRequest)
			return
		}
		resp, err := client.Post(bridgeURL, "application/json", strings.NewReader(payload))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		log.Printf("fire kind=%s bridge status=%d body=%q", kind, resp.StatusCode, body)
		fmt.Fprintf(w, "bridge answered %d: %s", resp.StatusCode, body)
	})

	// POST /subscribe sends a confirmation request pointing back at /confirm.
	http.HandleFunc("/subscribe", func(w http.ResponseWriter, r *http.Request) {
		req, err := http.NewRequest(http.MethodPost, bridgeURL, strings.NewReader(`{}`))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-OCI-NS-MessageType", "SubscriptionConfirmation")
		req.Header.Set("X-OCI-NS-ConfirmationURL", selfURL+"/confirm")
		resp, err := client.Do(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		log.Printf("subscribe bridge status=%d body=%q", resp.StatusCode, body)
		fmt.Fprintf(w, "bridge answered %d: %s", resp.StatusCode, body)
	})

	// GET /confirm is the confirmation callback target.
	http.HandleFunc("/confirm", func(w http.ResponseWriter, r *http.Request) {
		confirmations.Add(r.UserAgent())
		log.Printf("confirmation callback from %q", r.UserAgent())
		fmt.Fprint(w, "Confirmed")
	})

	// GET /confirmations lists received callbacks for verification.
	http.HandleFunc("/confirmations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(confirmations.GetAll())
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	log.Printf("mock-oci listening on :%s (bridge %s)", port, bridgeURL)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
