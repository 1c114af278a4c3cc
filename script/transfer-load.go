package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// loginRequest is the payload for opening a session
type loginRequest struct {
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// loginResponse carries the session token
type loginResponse struct {
	Token         string `json:"token"`
	AccountNumber string `json:"accountNumber"`
}

// transferRequest is the payload for moving funds
type transferRequest struct {
	ReceiverAccountNumber string `json:"receiverAccountNumber"`
	Amount                string `json:"amount"`
	IdempotencyKey        string `json:"idempotencyKey"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Replay       bool
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	ReplayedRequests   int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	Lock               sync.Mutex
}

// session pairs an account with its bearer token
type session struct {
	AccountNumber string
	Token         string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of transfers to make")
	accountsStr := flag.String("a", "", "Comma-separated list of account numbers to transfer between (at least 2)")
	password := flag.String("p", "", "Password shared by the test accounts")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	replayPct := flag.Int("replay", 10, "Percent of requests that retry a previously used idempotency key")
	flag.Parse()

	var accounts []string
	for _, number := range strings.Split(*accountsStr, ",") {
		number = strings.TrimSpace(number)
		if len(number) == 10 {
			accounts = append(accounts, number)
		}
	}

	if len(accounts) < 2 {
		fmt.Println("Need at least two ten-digit account numbers via -a")
		return
	}
	if *password == "" {
		fmt.Println("Need the shared test password via -p")
		return
	}

	fmt.Printf("Load testing transfers across %d accounts: %v\n", len(accounts), accounts)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Replay fraction: %d%%\n", *replayPct)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	// Open one session per account up front
	sessions, err := login(*baseURL, accounts, *password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(*baseURL, *delayMs, *replayPct, sessions, jobs, results)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			if result.Replay {
				stats.ReplayedRequests++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

// login opens a session for every account and returns the tokens
func login(baseURL string, accounts []string, password string) ([]session, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	sessions := make([]session, 0, len(accounts))
	for _, number := range accounts {
		body, err := json.Marshal(loginRequest{AccountNumber: number, Password: password})
		if err != nil {
			return nil, err
		}

		resp, err := client.Post(baseURL+"/login", "application/json", bytes.NewBuffer(body))
		if err != nil {
			return nil, err
		}

		var lr loginResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&lr)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("login for %s returned HTTP %d", number, resp.StatusCode)
		}
		if decodeErr != nil {
			return nil, decodeErr
		}

		sessions = append(sessions, session{AccountNumber: number, Token: lr.Token})
	}
	return sessions, nil
}

func worker(baseURL string, delayMs, replayPct int, sessions []session, jobs <-chan int, results chan<- TestResult) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	amounts := []string{"0.01", "0.50", "1.00", "2.50", "10.00"}

	var lastKey string
	var lastBody []byte
	var lastToken string

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// A fraction of requests re-send the previous intent verbatim to
		// exercise idempotent replay under load
		replay := lastKey != "" && rand.Intn(100) < replayPct

		var body []byte
		var token string
		if replay {
			body = lastBody
			token = lastToken
		} else {
			sender := sessions[rand.Intn(len(sessions))]
			receiver := sessions[rand.Intn(len(sessions))]
			for receiver.AccountNumber == sender.AccountNumber {
				receiver = sessions[rand.Intn(len(sessions))]
			}

			key := uuid.NewString()
			payload := transferRequest{
				ReceiverAccountNumber: receiver.AccountNumber,
				Amount:                amounts[rand.Intn(len(amounts))],
				IdempotencyKey:        key,
			}

			var err error
			body, err = json.Marshal(payload)
			if err != nil {
				results <- TestResult{Success: false, Error: err}
				continue
			}

			token = sender.Token
			lastKey = key
			lastBody = body
			lastToken = token
		}

		req, err := http.NewRequest("POST", baseURL+"/transfer", bytes.NewBuffer(body))
		if err != nil {
			results <- TestResult{Success: false, Error: err, Replay: replay}
			continue
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
			Replay:       replay,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			statusCode := resp.StatusCode
			result.StatusCode = statusCode
			// Insufficient funds is an expected outcome under random load
			result.Success = (statusCode >= 200 && statusCode < 300) || statusCode == http.StatusUnprocessableEntity
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", statusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Replayed Requests:   %d\n", stats.ReplayedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	fmt.Println("================================================")
}
