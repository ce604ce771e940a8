package command

import (
	"fmt"
	"strings"

	"musify/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review commands",
	Long:  `Rate and review albums. Each account can review an album once; the rating cannot be changed afterwards.`,
}

var createReviewCmd = &cobra.Command{
	Use:   "create",
	Short: "Review an album",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		var req dto.CreateReviewRequest
		req.AlbumID, _ = cmd.Flags().GetInt64("album")
		req.Title, _ = cmd.Flags().GetString("title")
		req.Content, _ = cmd.Flags().GetString("content")
		rating, _ := cmd.Flags().GetFloat64("rating")
		req.Rating = &rating

		ctx, cancel := commandContext(cmd)
		defer cancel()

		review, err := httpClient.CreateReview(ctx, &req)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		fmt.Printf("✓ Review created with ID %d\n", review.ID)
		return nil
	},
}

var getReviewCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get review by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "review")
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		review, err := anonymousClient().GetReview(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}

		printReview(review)
		return nil
	},
}

var updateReviewCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Edit the title and content of your review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "review")
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		var req dto.UpdateReviewRequest
		req.Title, _ = cmd.Flags().GetString("title")
		req.Content, _ = cmd.Flags().GetString("content")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		review, err := httpClient.UpdateReview(ctx, id, &req)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		fmt.Println("✓ Review updated")
		printReview(review)
		return nil
	},
}

var deleteReviewCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete your review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "review")
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := httpClient.DeleteReview(ctx, id); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		fmt.Printf("✓ Review %d deleted\n", id)
		return nil
	},
}

func printReview(review *dto.ReviewResponse) {
	fmt.Printf("ID: %d\n", review.ID)
	if review.Album != nil {
		fmt.Printf("Album: %s - %s\n", review.Album.Artist, review.Album.Title)
	} else {
		fmt.Printf("Album: %d\n", review.AlbumID)
	}
	if review.Author != nil {
		fmt.Printf("Author: %s\n", review.Author.Username)
	}
	fmt.Printf("Rating: %.1f\n", review.Rating)
	if review.Title != "" {
		fmt.Printf("Title: %s\n", review.Title)
	}
	fmt.Printf("%s\n", review.Content)
	fmt.Println(strings.Repeat("-", 50))
}

func init() {
	reviewCmd.AddCommand(createReviewCmd, getReviewCmd, updateReviewCmd, deleteReviewCmd)

	createReviewCmd.Flags().Int64P("album", "a", 0, "ID of the album to review")
	createReviewCmd.Flags().StringP("title", "t", "", "Review title")
	createReviewCmd.Flags().StringP("content", "c", "", "Review text")
	createReviewCmd.Flags().Float64P("rating", "r", 0, "Rating from 0 to 5 in steps of 0.5")
	_ = createReviewCmd.MarkFlagRequired("album")
	_ = createReviewCmd.MarkFlagRequired("content")
	_ = createReviewCmd.MarkFlagRequired("rating")

	updateReviewCmd.Flags().StringP("title", "t", "", "Review title")
	updateReviewCmd.Flags().StringP("content", "c", "", "Review text")
	_ = updateReviewCmd.MarkFlagRequired("title")
	_ = updateReviewCmd.MarkFlagRequired("content")
}
