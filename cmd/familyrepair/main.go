// familyrepair is the operational CLI for the family-graph repair
// routines. It talks to the same database as the API server and runs the
// same service code, which keeps one-off cleanup sessions and the admin UI
// byte-for-byte consistent.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lingvoclass/backoffice/internal/config"
	"github.com/lingvoclass/backoffice/internal/repository"
	"github.com/lingvoclass/backoffice/internal/service"
)

var (
	orgIDFlag string
	yesFlag   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&orgIDFlag, "org", "o", "", "Organization id (required)")
	rootCmd.MarkPersistentFlagRequired("org")

	reorganizeCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	splitCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(dedupCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(reorganizeCmd)
	rootCmd.AddCommand(restoreCmd)
}

var rootCmd = &cobra.Command{
	Use:   "familyrepair",
	Short: "Detect and repair defects in the family-group graph",
	Long: `familyrepair detects duplicate guardian links, splits over-merged
family groups, rebuilds the graph from scratch, and restores guardian
links by name matching.`,
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List family groups with duplicate or excessive guardian edges",
	Run: func(cmd *cobra.Command, args []string) {
		svc, orgID := setup()

		issues, err := svc.DetectIssues(context.Background(), orgID)
		if err != nil {
			log.Fatalf("Failed to detect issues: %v", err)
		}

		if len(issues) == 0 {
			fmt.Println("No defective groups found")
			return
		}
		for _, issue := range issues {
			fmt.Printf("%s  %q  students=%d edges=%d duplicates=%d too_many=%v\n",
				issue.GroupID, issue.GroupName, issue.StudentCount,
				issue.EdgeCount, issue.DuplicateEdges, issue.TooManyEdges)
		}
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup [group-id]",
	Short: "Remove duplicate guardian edges, in one group or everywhere",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, orgID := setup()

		var removed int
		var err error
		if len(args) == 1 {
			groupID, parseErr := uuid.Parse(args[0])
			if parseErr != nil {
				log.Fatalf("Invalid group id: %v", parseErr)
			}
			removed, err = svc.DeduplicateGroup(context.Background(), groupID)
		} else {
			removed, err = svc.DeduplicateAll(context.Background(), orgID)
		}
		if err != nil {
			log.Fatalf("Deduplication failed: %v", err)
		}

		fmt.Printf("Removed %d duplicate edges\n", removed)
	},
}

var splitCmd = &cobra.Command{
	Use:   "split [group-id]",
	Short: "Break an over-merged group into one group per student",
	Long: `Split discards the group's guardian links on purpose; run
"restore" afterwards to re-derive them by name matching.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := setup()

		groupID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid group id: %v", err)
		}

		if !yesFlag && !confirm("This deletes the group and its guardian links. Continue?") {
			fmt.Println("Aborted")
			return
		}

		created, err := svc.SplitGroup(context.Background(), groupID)
		if err != nil {
			log.Fatalf("Split failed: %v", err)
		}

		fmt.Printf("Created %d singleton groups\n", created)
	},
}

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize",
	Short: "Rebuild the whole family graph: one singleton group per student",
	Run: func(cmd *cobra.Command, args []string) {
		svc, orgID := setup()

		if !yesFlag && !confirm("This deletes ALL family groups and guardian links for the organization. Continue?") {
			fmt.Println("Aborted")
			return
		}

		report, err := svc.ReorganizeAll(context.Background(), orgID)
		if err != nil {
			log.Fatalf("Reorganization failed: %v", err)
		}

		fmt.Printf("Students: %d\nCreated groups: %d\nErrors: %d\n",
			report.TotalStudents, report.CreatedGroups, len(report.Errors))
		for _, e := range report.Errors {
			fmt.Println("  - " + e)
		}
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Re-link guardians to guardian-less groups by name matching",
	Run: func(cmd *cobra.Command, args []string) {
		svc, orgID := setup()

		report, err := svc.RestoreGuardianLinks(context.Background(), orgID)
		if err != nil {
			log.Fatalf("Restoration failed: %v", err)
		}

		fmt.Printf("Linked: %d\nAlready linked: %d\nNot found: %d\n",
			report.Linked, report.AlreadyLinked, report.NotFound)
	},
}

func setup() (*service.FamilyRepairService, uuid.UUID) {
	orgID, err := uuid.Parse(orgIDFlag)
	if err != nil {
		log.Fatalf("Invalid organization id: %v", err)
	}

	godotenv.Load()
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	familyRepo := repository.NewFamilyRepository(db)
	svc := service.NewFamilyRepairService(familyRepo, service.RepairConfig{
		MaxGuardianEdges: cfg.Repair.MaxGuardianEdges,
		GroupNamePrefix:  cfg.Repair.GroupNamePrefix,
	})
	return svc, orgID
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
