/*
Package sdk is a Go client for the campus services: identity, course and
enrollment.

# Clients and Sessions

Each service runs on its own base URL, so create one Client per service.
Anonymous operations live on Client; operations that need a bearer token
live on Session. A token issued by the identity service is accepted by every
service, so one token can back sessions on all three:

	identity := sdk.NewClient("http://localhost:8081")
	courses := sdk.NewClient("http://localhost:8082")
	enrollments := sdk.NewClient("http://localhost:8083")

	if _, err := identity.Register(ctx, sdk.RegisterRequest{
		Username:  "alice",
		Password:  "correct horse battery staple",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
	}); err != nil {
		return err
	}

	login, err := identity.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "..."})
	if err != nil {
		return err
	}

	list, err := courses.ListCourses(ctx)
	...
	_, err = enrollments.WithToken(login.Token).Enroll(ctx, list[0].ID)

# Errors

Non-success responses are returned as *APIError carrying the HTTP status,
the error code and, for validation failures, the offending fields:

	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// already enrolled
	}

Sessions hold no mutable state and are safe for concurrent use.
*/
package sdk
