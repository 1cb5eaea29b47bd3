package services

import (
	"github.com/sirupsen/logrus"

	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// PostService manages the announcements board. Only the authoring user may
// update or delete a post.
type PostService interface {
	CreatePost(authorID uint, title, content string) (*models.FeaturePost, error)
	GetPost(id uint) (*models.FeaturePost, error)
	UpdatePost(id, requesterID uint, title, content string) (*models.FeaturePost, error)
	DeletePost(id, requesterID uint) error
	ListPosts() ([]models.FeaturePost, error)
	LatestPost() (*models.FeaturePost, error)
}

type postService struct {
	postRepo repositories.FeaturePostRepository
}

func NewPostService(postRepo repositories.FeaturePostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) CreatePost(authorID uint, title, content string) (*models.FeaturePost, error) {
	post := &models.FeaturePost{Title: title, Content: content, AuthorID: authorID}
	if err := s.postRepo.Create(nil, post); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"post_id": post.ID, "author_id": authorID}).Info("CreatePost: post created")
	return post, nil
}

func (s *postService) GetPost(id uint) (*models.FeaturePost, error) {
	post, err := s.postRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) UpdatePost(id, requesterID uint, title, content string) (*models.FeaturePost, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, ErrPostForbidden
	}
	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(nil, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(id, requesterID uint) error {
	post, err := s.GetPost(id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return ErrPostForbidden
	}
	return s.postRepo.Delete(nil, id)
}

func (s *postService) ListPosts() ([]models.FeaturePost, error) {
	return s.postRepo.ListLatestFirst(nil)
}

func (s *postService) LatestPost() (*models.FeaturePost, error) {
	post, err := s.postRepo.Latest(nil)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
