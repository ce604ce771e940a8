package command

import (
	"fmt"
	"strings"

	"musify/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Album commands",
	Long:  `Browse albums and their reviews. Creating, updating and deleting albums requires an admin account.`,
}

var listAlbumsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all albums",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		albums, err := anonymousClient().ListAlbums(ctx)
		if err != nil {
			return fmt.Errorf("failed to list albums: %w", err)
		}

		if len(albums) == 0 {
			fmt.Println("No albums found.")
			return nil
		}

		fmt.Printf("Found %d albums:\n\n", len(albums))
		for i := range albums {
			printAlbum(&albums[i])
		}
		return nil
	},
}

var getAlbumCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get album by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "album")
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		album, err := anonymousClient().GetAlbum(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get album: %w", err)
		}

		printAlbum(album)
		fmt.Printf("Description: %s\n", album.Description)
		fmt.Printf("Cover: %s\n", album.ImageURL)
		return nil
	},
}

var albumReviewsCmd = &cobra.Command{
	Use:   "reviews [id]",
	Short: "List the reviews of an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "album")
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		reviews, err := anonymousClient().ListAlbumReviews(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}

		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}
		for i := range reviews {
			printReview(&reviews[i])
		}
		return nil
	},
}

var createAlbumCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an album (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		album, err := httpClient.CreateAlbum(ctx, albumRequestFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("failed to create album: %w", err)
		}

		fmt.Printf("✓ Album created with ID %d\n", album.ID)
		return nil
	},
}

var updateAlbumCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an album (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "album")
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		album, err := httpClient.UpdateAlbum(ctx, id, albumRequestFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("failed to update album: %w", err)
		}

		fmt.Println("✓ Album updated")
		printAlbum(album)
		return nil
	},
}

var deleteAlbumCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an album and all of its reviews (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "album")
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := httpClient.DeleteAlbum(ctx, id); err != nil {
			return fmt.Errorf("failed to delete album: %w", err)
		}

		fmt.Printf("✓ Album %d deleted\n", id)
		return nil
	},
}

func albumRequestFromFlags(cmd *cobra.Command) *dto.AlbumRequest {
	var req dto.AlbumRequest
	req.Title, _ = cmd.Flags().GetString("title")
	req.Artist, _ = cmd.Flags().GetString("artist")
	req.Description, _ = cmd.Flags().GetString("description")
	req.ImageURL, _ = cmd.Flags().GetString("image-url")
	return &req
}

func printAlbum(album *dto.AlbumResponse) {
	fmt.Printf("ID: %d\n", album.ID)
	fmt.Printf("Title: %s\n", album.Title)
	fmt.Printf("Artist: %s\n", album.Artist)
	fmt.Printf("Rating: %.2f\n", album.Rating)
	fmt.Println(strings.Repeat("-", 50))
}

func init() {
	albumCmd.AddCommand(listAlbumsCmd, getAlbumCmd, albumReviewsCmd, createAlbumCmd, updateAlbumCmd, deleteAlbumCmd)

	for _, c := range []*cobra.Command{createAlbumCmd, updateAlbumCmd} {
		c.Flags().StringP("title", "t", "", "Album title")
		c.Flags().StringP("artist", "a", "", "Album artist")
		c.Flags().StringP("description", "d", "", "Album description")
		c.Flags().StringP("image-url", "i", "", "Cover image URL")
		_ = c.MarkFlagRequired("title")
		_ = c.MarkFlagRequired("artist")
		_ = c.MarkFlagRequired("description")
		_ = c.MarkFlagRequired("image-url")
	}
}
