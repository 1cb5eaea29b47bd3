//go:build ignore
// +build ignore

// Manual concurrency stress test for the loan-capacity rule.
//
// Usage:
//
//	TOKEN=<bearer> go run ./scripts/concurrency_test.go <book_id> <user1_id> [user2_id ...]
//
// Or with environment variables:
//
//	TOKEN=<bearer> BOOK_ID=<id> USER_IDS=<id1,id2,...> go run ./scripts/concurrency_test.go
//
// What it does:
//  1. Fires N goroutines (one per user) all attempting to create a loan for the
//     same book simultaneously.
//  2. Prints how many got a loan (201) vs. were rejected by the capacity rule (422).
//  3. If the number of created loans never exceeds the book's available copies,
//     the FOR UPDATE lock around the capacity check is doing its job.
//
// Prerequisites:
//   - Server running, users and a book with a known copy count seeded.
//   - TOKEN must be a valid session token (POST /login).

package main

import (
	"bytes"
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

const defaultServerAddr = "http://localhost:8080"

type loanResult struct {
	UserID     string
	StatusCode int
	Err        error
}

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}
	token := os.Getenv("TOKEN")
	if token == "" {
		log.Fatal("TOKEN environment variable is required (POST /login to obtain one)")
	}

	bookID := os.Getenv("BOOK_ID")
	userIDsEnv := os.Getenv("USER_IDS")

	var userIDs []string
	if userIDsEnv != "" {
		userIDs = strings.Split(userIDsEnv, ",")
	}

	args := os.Args[1:]
	if len(args) >= 1 {
		bookID = args[0]
	}
	if len(args) >= 2 {
		userIDs = args[1:]
	}

	if bookID == "" {
		log.Fatal("Usage: TOKEN=<bearer> BOOK_ID=<id> USER_IDS=<id1,id2,...> go run ./scripts/concurrency_test.go\n" +
			"  or: TOKEN=<bearer> go run ./scripts/concurrency_test.go <book_id> <user1_id> [user2_id ...]")
	}
	if len(userIDs) == 0 {
		log.Fatal("At least one user ID must be provided via USER_IDS env or positional args")
	}

	fmt.Printf("=== Loan Capacity Concurrency Test ===\n")
	fmt.Printf("Server : %s\n", serverAddr)
	fmt.Printf("Book   : %s\n", bookID)
	fmt.Printf("Users  : %d\n\n", len(userIDs))

	results := make([]loanResult, len(userIDs))
	var wg sync.WaitGroup

	// Fire all goroutines simultaneously using a barrier.
	start := make(chan struct{})

	for i, uid := range userIDs {
		wg.Add(1)
		go func(idx int, userID string) {
			defer wg.Done()
			<-start
			results[idx] = attemptLoan(serverAddr, token, bookID, strings.TrimSpace(userID))
		}(i, uid)
	}

	fmt.Println("Firing all requests simultaneously...")
	close(start)

	wg.Wait()
	fmt.Println("All requests completed.")
	fmt.Println()

	var created, rejected, failures int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Printf("  [ERR ] user=%-10s err=%v\n", r.UserID, r.Err)
		case r.StatusCode == http.StatusCreated:
			created++
			fmt.Printf("  [LOAN] user=%-10s status=%d\n", r.UserID, r.StatusCode)
		case r.StatusCode == http.StatusUnprocessableEntity:
			rejected++
			fmt.Printf("  [FULL] user=%-10s status=%d capacity exceeded\n", r.UserID, r.StatusCode)
		default:
			failures++
			fmt.Printf("  [FAIL] user=%-10s status=%d unexpected response\n", r.UserID, r.StatusCode)
		}
	}

	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Loans created      : %d\n", created)
	fmt.Printf("Capacity rejections: %d\n", rejected)
	fmt.Printf("Failures           : %d\n", failures)
	fmt.Printf("Total              : %d\n\n", len(userIDs))

	fmt.Println("--- Invariant Check ---")
	fmt.Println("The capacity check runs under a book-row FOR UPDATE lock, so loans created")
	fmt.Printf("must not exceed the book's available copies. Created: %d.\n", created)

	if failures > 0 {
		fmt.Printf("\n[WARNING] %d request(s) failed, check server logs for details.\n", failures)
		os.Exit(1)
	}
}

// attemptLoan sends POST /book-loans for the given user/book pair with a due
// date one week out and reports the response status.
func attemptLoan(serverAddr, token, bookID, userID string) loanResult {
	due := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	body := fmt.Sprintf(`{"user_id":%s,"book_id":%s,"due_date":"%s"}`, userID, bookID, due)

	req, err := http.NewRequest(http.MethodPost, serverAddr+"/book-loans", bytes.NewBufferString(body))
	if err != nil {
		return loanResult{UserID: userID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return loanResult{UserID: userID, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return loanResult{UserID: userID, StatusCode: resp.StatusCode, Err: fmt.Errorf("bad JSON: %s", raw)}
	}
	return loanResult{UserID: userID, StatusCode: resp.StatusCode}
}
