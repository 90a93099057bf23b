package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"festago/backend/internal/models"
	"festago/backend/internal/report"
	"festago/backend/internal/storage"
	"festago/backend/internal/trust"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	trustSvc := trust.NewService(storageSvc)
	reportSvc := report.NewService(storageSvc, trustSvc)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	reviewer := os.Getenv("REVIEWER_ID")
	if reviewer == "" {
		reviewer = "admin"
	}

	command := os.Args[1]
	switch command {
	case "suspend":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin suspend <actor_id> <reason> [details]")
			os.Exit(1)
		}
		details := strings.Join(os.Args[4:], " ")
		susp, err := trustSvc.Suspend(os.Args[2], models.SuspensionReason(os.Args[3]), details)
		if err != nil {
			log.Fatalf("Error suspending actor: %v", err)
		}
		fmt.Printf("Actor %s suspended (suspension %s).\n", os.Args[2], susp.ID)

	case "reactivate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin reactivate <actor_id> [note]")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if err := trustSvc.Reactivate(os.Args[2], reviewer, note); err != nil {
			log.Fatalf("Error reactivating actor: %v", err)
		}
		fmt.Printf("Actor %s has been reactivated.\n", os.Args[2])

	case "investigate":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin investigate <report_id>")
			os.Exit(1)
		}
		if _, err := reportSvc.StartInvestigation(os.Args[2], reviewer); err != nil {
			log.Fatalf("Error starting investigation: %v", err)
		}
		fmt.Printf("Report %s is now under investigation.\n", os.Args[2])

	case "resolve":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin resolve <report_id> [note] (set CONFIRM=1 to record a violation)")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		var actions []string
		if os.Getenv("CONFIRM") == "1" {
			actions = []string{"violation_recorded"}
		}
		if _, err := reportSvc.Resolve(os.Args[2], reviewer, note, actions); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %s resolved.\n", os.Args[2])

	case "dismiss":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin dismiss <report_id> [note]")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if _, err := reportSvc.Dismiss(os.Args[2], reviewer, note); err != nil {
			log.Fatalf("Error dismissing report: %v", err)
		}
		fmt.Printf("Report %s dismissed.\n", os.Args[2])

	case "escalate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin escalate <report_id> [note]")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if _, err := reportSvc.Escalate(os.Args[2], reviewer, note); err != nil {
			log.Fatalf("Error escalating report: %v", err)
		}
		fmt.Printf("Report %s escalated.\n", os.Args[2])

	case "approve-appeal":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin approve-appeal <appeal_id> [note]")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if _, err := trustSvc.ResolveAppeal(os.Args[2], reviewer, true, note); err != nil {
			log.Fatalf("Error approving appeal: %v", err)
		}
		fmt.Printf("Appeal %s approved.\n", os.Args[2])

	case "reject-appeal":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin reject-appeal <appeal_id> [note]")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if _, err := trustSvc.ResolveAppeal(os.Args[2], reviewer, false, note); err != nil {
			log.Fatalf("Error rejecting appeal: %v", err)
		}
		fmt.Printf("Appeal %s rejected.\n", os.Args[2])

	case "status":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin status <actor_id>")
			os.Exit(1)
		}
		status, err := trustSvc.GetSafetyStatus(os.Args[2])
		if err != nil {
			log.Fatalf("Error fetching status: %v", err)
		}
		fmt.Printf("Actor %s: score %.1f, status %s, badges %v\n",
			status.ActorID, status.Score, status.Status, status.Badges)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands: suspend, reactivate, investigate, resolve, dismiss, escalate,")
	fmt.Println("          approve-appeal, reject-appeal, status")
}
