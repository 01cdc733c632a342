package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"
)

// Client is a typed HTTP client for the board service.
type Client struct {
	http.Client
	Addr  string
	Token string
}

// Article mirrors the service's article response payload.
type Article struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AuthorID   uint       `json:"authorId"`
	CreateDate time.Time  `json:"createDate"`
	ModifyDate *time.Time `json:"modifyDate"`
	VoteCount  int64      `json:"voteCount"`
	Answers    []Answer   `json:"answers"`
}

type Answer struct {
	ID         uint      `json:"id"`
	ArticleID  uint      `json:"articleId"`
	Content    string    `json:"content"`
	AuthorID   *uint     `json:"authorId"`
	CreateDate time.Time `json:"createDate"`
}

type ArticlePage struct {
	Items []Article `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// Signup registers a user.
func (c *Client) Signup(username, password string) (*User, error) {
	var u User
	err := c.call("POST", "/users", map[string]string{
		"username": username,
		"password": password,
	}, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Login obtains a token and keeps it for subsequent calls.
func (c *Client) Login(username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.call("POST", "/auth/token", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	c.Token = resp.Token

	return nil
}

func (c *Client) CreateArticle(title, content string) (*Article, error) {
	var a Article
	err := c.call("POST", "/articles", map[string]string{
		"title":   title,
		"content": content,
	}, &a)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) GetArticle(id uint) (*Article, error) {
	var a Article
	if err := c.call("GET", fmt.Sprintf("/articles/%d", id), nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// ListArticles fetches one page of the listing, optionally filtered
// by keyword.
func (c *Client) ListArticles(page int, kw string) (*ArticlePage, error) {
	var p ArticlePage
	path := fmt.Sprintf("/articles?page=%d&kw=%s", page, url.QueryEscape(kw))
	if err := c.call("GET", path, nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (c *Client) UpdateArticle(id uint, title, content string) (*Article, error) {
	var a Article
	err := c.call("PUT", fmt.Sprintf("/articles/%d", id), map[string]string{
		"title":   title,
		"content": content,
	}, &a)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (c *Client) DeleteArticle(id uint) error {
	return c.call("DELETE", fmt.Sprintf("/articles/%d", id), nil, nil)
}

// Vote upvotes an article and returns the resulting voter count.
func (c *Client) Vote(id uint) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.call("POST", fmt.Sprintf("/articles/%d/vote", id), nil, &resp); err != nil {
		return 0, err
	}

	return resp.Count, nil
}

func (c *Client) CreateAnswer(articleID uint, content string) (*Answer, error) {
	var ans Answer
	err := c.call("POST", fmt.Sprintf("/articles/%d/answers", articleID), map[string]string{
		"content": content,
	}, &ans)
	if err != nil {
		return nil, err
	}

	return &ans, nil
}

func (c *Client) call(method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := ioutil.ReadAll(resp.Body)

		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
