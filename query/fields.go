package query

var HouseFields = Fields{
	"name":          {Column: "name", Kind: String},
	"slug":          {Column: "slug", Kind: String},
	"description":   {Column: "description", Kind: String},
	"website":       {Column: "website", Kind: String},
	"phone":         {Column: "phone", Kind: String},
	"email":         {Column: "email", Kind: String},
	"address":       {Column: "address", Kind: String},
	"averageRating": {Column: "average_rating", Kind: Number},
	"photo":         {Column: "photo", Kind: String},
	"housing":       {Column: "housing", Kind: Bool},
	"acceptGi":      {Column: "accept_gi", Kind: Bool},
	"createdAt":     {Column: "created_at", Kind: Time},
	"userId":        {Column: "user_id", Kind: String},
}

var BookFields = Fields{
	"title":       {Column: "title", Kind: String},
	"description": {Column: "description", Kind: String},
	"author":      {Column: "author", Kind: String},
	"rating":      {Column: "rating", Kind: Number},
	"createdAt":   {Column: "created_at", Kind: Time},
	"houseId":     {Column: "house_id", Kind: String},
	"userId":      {Column: "user_id", Kind: String},
}

var ReviewFields = Fields{
	"title":     {Column: "title", Kind: String},
	"text":      {Column: "text", Kind: String},
	"rating":    {Column: "rating", Kind: Number},
	"createdAt": {Column: "created_at", Kind: Time},
	"houseId":   {Column: "house_id", Kind: String},
	"userId":    {Column: "user_id", Kind: String},
}
