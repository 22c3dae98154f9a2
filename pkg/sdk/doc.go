// Package giftrec provides a Go client for the giftrec gift
// recommendation service.
//
//	client, _ := giftrec.New("http://localhost:8080",
//	    giftrec.WithAPIKey("secret"),
//	)
//	rec, err := client.Recommend(ctx, "a gift for my nephew who loves tech, $20-40")
//	if err != nil {
//	    // errors.Is(err, giftrec.ErrNoProducts) etc.
//	}
//	fmt.Println(rec.Attributes)
package giftrec
