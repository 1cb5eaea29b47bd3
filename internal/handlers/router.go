package handlers

import (
	"github.com/gin-gonic/gin"

	"campuslibrary/internal/auth"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
	"campuslibrary/internal/services"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Sessions   *auth.Store
	UserRepo   repositories.UserRepository
	Users      services.UserService
	Books      services.BookService
	Catalog    services.CatalogService
	Loans      services.LoanService
	Attendance services.AttendanceService
	Posts      services.PostService
	Stats      services.StatsService
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	users := &UserHandler{svc: deps.Users}
	books := &BookHandler{svc: deps.Books, loans: deps.Loans}
	catalog := &CatalogHandler{svc: deps.Catalog}
	loans := &LoanHandler{svc: deps.Loans}
	attendance := &AttendanceHandler{svc: deps.Attendance}
	posts := &PostHandler{svc: deps.Posts}
	stats := &StatsHandler{svc: deps.Stats}

	r.POST("/register", users.register)
	r.POST("/login", users.login)

	authed := r.Group("/", Authenticate(deps.Sessions, deps.UserRepo))
	{
		authed.POST("/logout", users.logout)
		authed.GET("/user", users.current)

		authed.GET("/users", users.listStudents)
		authed.GET("/users/:id", users.show)
		authed.PUT("/users/:id", users.update)
		authed.DELETE("/users/:id", users.destroy)

		authed.GET("/books", books.index)
		authed.POST("/books", books.store)
		authed.GET("/books/recommended", books.recommended)
		authed.GET("/books/:id", books.show)
		authed.PUT("/books/:id", books.update)
		authed.DELETE("/books/:id", books.destroy)
		authed.GET("/books/:id/active-loans", books.activeLoans)

		authed.GET("/authors", catalog.listAuthors)
		authed.POST("/authors", catalog.storeAuthor)
		authed.GET("/authors/:id", catalog.showAuthor)
		authed.PUT("/authors/:id", catalog.updateAuthor)
		authed.DELETE("/authors/:id", catalog.destroyAuthor)

		authed.GET("/categories", catalog.listCategories)
		authed.POST("/categories", catalog.storeCategory)
		authed.GET("/categories/:id", catalog.showCategory)
		authed.PUT("/categories/:id", catalog.updateCategory)
		authed.DELETE("/categories/:id", catalog.destroyCategory)

		authed.GET("/subjects", catalog.listSubjects)
		authed.POST("/subjects", catalog.storeSubject)
		authed.GET("/subjects/:id", catalog.showSubject)
		authed.PUT("/subjects/:id", catalog.updateSubject)
		authed.DELETE("/subjects/:id", catalog.destroySubject)

		authed.GET("/book-loans", loans.index)
		authed.POST("/book-loans", loans.store)
		authed.GET("/book-loans/:id", loans.show)
		authed.PUT("/book-loans/:id", loans.update)
		authed.DELETE("/book-loans/:id", loans.destroy)
		authed.POST("/book-loans/:id/return", loans.returnBook)
		authed.GET("/book-loans/:id/return", loans.returnEligibility)

		authed.GET("/attendances", attendance.index)
		authed.POST("/attendances", attendance.store)
		authed.GET("/attendances/:id", attendance.show)
		authed.PUT("/attendances/:id", attendance.update)
		authed.DELETE("/attendances/:id", attendance.destroy)
		authed.POST("/attendance/check", attendance.check)
		authed.POST("/check-student", attendance.checkStudent)

		authed.GET("/feature-posts", posts.index)
		authed.GET("/feature-posts/latest", posts.latest)
		authed.POST("/feature-posts", posts.store)
		authed.GET("/feature-posts/:id", posts.show)
		authed.PUT("/feature-posts/:id", posts.update)
		authed.DELETE("/feature-posts/:id", posts.destroy)

		authed.GET("/stats", RequireAdmin(), stats.admin)
		authed.GET("/student-stats", RequireRole(models.UserRoleStudent), stats.student)
	}
}
