package cms

// postQuery fetches one post by URI. The URI travels as a variable.
const postQuery = `query PostByURI($uri: ID!) {
  post(id: $uri, idType: URI) {
    id
    title
    content
    dateGmt
    modifiedGmt
    excerpt
    author {
      node {
        name
      }
    }
    featuredImage {
      node {
        sourceUrl
        altText
      }
    }
    mediaItems {
      nodes {
        sourceUrl
        altText
      }
    }
  }
}`

const pingQuery = `{ __typename }`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type postResponse struct {
	Data struct {
		Post *postNode `json:"post"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type pingResponse struct {
	Data struct {
		Typename string `json:"__typename"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type mediaNode struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText"`
}

type postNode struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	DateGMT     gmtText `json:"dateGmt"`
	ModifiedGMT gmtText `json:"modifiedGmt"`
	Excerpt     string  `json:"excerpt"`
	Author      *struct {
		Node *struct {
			Name string `json:"name"`
		} `json:"node"`
	} `json:"author"`
	FeaturedImage *struct {
		Node *mediaNode `json:"node"`
	} `json:"featuredImage"`
	MediaItems *struct {
		Nodes []mediaNode `json:"nodes"`
	} `json:"mediaItems"`
}
